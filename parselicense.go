package widevine

import (
	"encoding/hex"

	"github.com/Cooomma/go-widevine/protocol"
	"github.com/Cooomma/go-widevine/wvcrypto"
)

// ParseLicense verifies and decodes a license server's response,
// returning the content keys it carries. It consumes the session:
// a second call on the same Session fails with KindState.
func (s *Session) ParseLicense(ldm *LicenseDecryptionModule, response []byte) ([]KeyContainer, *Error) {
	if s.phase != sessionPhaseAwaiting {
		return nil, stateErrorf("parse_license called outside the Awaiting phase")
	}

	signed, err := protocol.UnmarshalSignedMessage(response)
	if err != nil {
		return nil, wrapInputErrorf(err, "decode signed message")
	}
	if signed.SessionKey == nil {
		return nil, inputErrorf("license response missing session_key")
	}

	sessionKey, cerr := wvcrypto.DecryptOAEP(ldm.privateKey, signed.SessionKey)
	if cerr != nil {
		return nil, cryptoErrorf(cerr, "unwrap session key")
	}
	if len(sessionKey) < 16 {
		return nil, internalErrorf("unwrapped session key too short: %d bytes", len(sessionKey))
	}

	keys, derr := wvcrypto.DeriveResponseKeys(sessionKey[:16], s.lastRequestBytes)
	if derr != nil {
		return nil, cryptoErrorf(derr, "derive response keys")
	}

	if !wvcrypto.VerifyResponseSignature(keys.Mac, signed.Msg, signed.Signature) {
		return nil, inputErrorf("license signature invalid")
	}

	license, err := protocol.UnmarshalLicense(signed.Msg)
	if err != nil {
		return nil, wrapInputErrorf(err, "decode license")
	}

	out := make([]KeyContainer, 0, len(license.Keys))
	for _, kc := range license.Keys {
		kid := keyContainerKid(kc)
		plaintext, cerr := wvcrypto.DecryptCBC(keys.Enc, kc.IV, kc.Key)
		if cerr != nil {
			return nil, cryptoErrorf(cerr, "decrypt content key for kid=%s", kid)
		}
		out = append(out, KeyContainer{
			Kid: kid,
			Key: hex.EncodeToString(plaintext),
		})
	}

	s.phase = sessionPhaseDone
	s.Logger.WithField("key_count", len(out)).Debug("license parsed")
	return out, nil
}

func keyContainerKid(kc protocol.KeyContainer) string {
	if len(kc.ID) > 0 {
		return hex.EncodeToString(kc.ID)
	}
	return kc.Type.String()
}
