package widevine

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Cooomma/go-widevine/protocol"
	"github.com/Cooomma/go-widevine/wvcrypto"
)

type sessionPhase int

const (
	sessionPhaseNew sessionPhase = iota
	sessionPhaseAwaiting
	sessionPhaseDone
)

// Session is the stateful core of a single license exchange: one
// content item, one create_license_request, at most one
// parse_license. It is not safe for concurrent mutation; distinct
// Sessions over the same LicenseDecryptionModule are independent.
type Session struct {
	SessionID []byte
	Logger    *logrus.Logger

	phase            sessionPhase
	pinnedSigned     *protocol.SignedDrmCertificate
	pinnedCert       *protocol.DrmCertificate
	lastRequestBytes []byte
}

// NewSession starts a fresh session using the package-wide default
// logger.
func NewSession() *Session {
	return NewSessionWithLogger(nil)
}

// NewSessionWithLogger starts a fresh session logging through l.
func NewSessionWithLogger(l *logrus.Logger) *Session {
	return &Session{
		SessionID: generateSessionID(),
		Logger:    loggerOrDefault(l),
		phase:     sessionPhaseNew,
	}
}

// generateSessionID builds the 16-byte session identifier: 4 random
// bytes, 4 zero bytes, and the little-endian u64 value 1. The server
// does not treat it as a secret, so only the leading 4 bytes are
// drawn from the RNG.
func generateSessionID() []byte {
	id := make([]byte, 16)
	_, _ = rand.Read(id[:4])
	copy(id[8:], le64(1))
	return id
}

// CreateLicenseRequest builds, signs, and serializes a LicenseRequest
// for pssh, advancing the session from New to Awaiting. pssh must be
// a whole PSSH box carrying the Widevine system id at bytes [12..28).
func (s *Session) CreateLicenseRequest(ldm *LicenseDecryptionModule, pssh []byte) ([]byte, *Error) {
	if s.phase != sessionPhaseNew {
		return nil, stateErrorf("create_license_request called outside the New phase")
	}

	tail, verr := validatePSSH(pssh)
	if verr != nil {
		return nil, verr
	}

	nonce, err := randomUint32()
	if err != nil {
		return nil, cryptoErrorf(err, "generate key control nonce")
	}

	req := &protocol.LicenseRequest{
		ContentID: &protocol.ContentIdentification{
			WidevinePsshData: &protocol.WidevinePsshData{
				PsshData:       [][]byte{tail},
				LicenseType:    protocol.LicenseTypeStreaming,
				HasLicenseType: true,
				RequestID:      s.SessionID,
			},
		},
		Type:               protocol.RequestTypeNew,
		HasType:            true,
		RequestTime:        time.Now().Unix(),
		HasRequestTime:     true,
		ProtocolVersion:    protocol.ProtocolVersion21,
		HasProtocolVersion: true,
		KeyControlNonce:    nonce,
		HasKeyControlNonce: true,
	}

	if s.pinnedCert != nil {
		eci, derr := encryptClientIdentification(s.pinnedCert, ldm)
		if derr != nil {
			return nil, derr
		}
		req.EncryptedClientID = eci
	} else {
		req.ClientID = ldm.identificationBlob
		req.HasClientID = true
	}

	reqBytes := req.Marshal()

	sig, err := wvcrypto.SignPSS(ldm.privateKey, reqBytes)
	if err != nil {
		return nil, cryptoErrorf(err, "sign license request")
	}

	signed := &protocol.SignedMessage{
		Type:      protocol.MessageTypeLicenseRequest,
		HasType:   true,
		Msg:       reqBytes,
		Signature: sig,
	}

	s.lastRequestBytes = reqBytes
	s.phase = sessionPhaseAwaiting
	s.Logger.WithField("session_id", hex.EncodeToString(s.SessionID)).Debug("license request created")

	return signed.Marshal(), nil
}

func randomUint32() (uint32, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}
