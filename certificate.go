package widevine

import (
	"crypto/rsa"
	"crypto/x509"

	"github.com/Cooomma/go-widevine/protocol"
	"github.com/Cooomma/go-widevine/wvcrypto"
)

// SetServiceCertificate pins raw as the session's service certificate.
// raw must be a serialized SignedDrmCertificate whose signature
// verifies under the Widevine root public key. A verification
// failure is an error, never a silent downgrade to "no certificate
// pinned" — the caller decides whether to retry with a different
// certificate or proceed unpinned by simply not calling this method.
func (s *Session) SetServiceCertificate(raw []byte) *Error {
	if s.phase != sessionPhaseNew {
		return stateErrorf("set_service_certificate called outside the New phase")
	}
	signed, err := protocol.UnmarshalSignedDrmCertificate(raw)
	if err != nil {
		return wrapInputErrorf(err, "decode signed drm certificate")
	}
	cert, derr := verifyAndDecodeCertificate(signed)
	if derr != nil {
		return derr
	}
	s.Logger.Debugf("pinned service certificate, provider=%s", cert.ProviderID)
	s.pinnedSigned = signed
	s.pinnedCert = cert
	return nil
}

// SetServiceCertificateFromSignedMessage unwraps raw as a SignedMessage
// of type SERVICE_CERTIFICATE and pins its inner SignedDrmCertificate.
// Some license endpoints deliver the certificate this way in response
// to ServiceCertificateChallenge.
func (s *Session) SetServiceCertificateFromSignedMessage(raw []byte) *Error {
	msg, err := protocol.UnmarshalSignedMessage(raw)
	if err != nil {
		return wrapInputErrorf(err, "decode signed message")
	}
	if msg.HasType && msg.Type != protocol.MessageTypeServiceCertificate {
		return inputErrorf("signed message is not a service certificate (type=%d)", msg.Type)
	}
	return s.SetServiceCertificate(msg.Msg)
}

// SetDefaultServiceCertificate pins the certificate bundled with this
// module, requiring no network interaction.
func (s *Session) SetDefaultServiceCertificate() *Error {
	return s.SetServiceCertificate(defaultServiceCertificateBytes)
}

func verifyAndDecodeCertificate(signed *protocol.SignedDrmCertificate) (*protocol.DrmCertificate, *Error) {
	if err := wvcrypto.VerifyPSS(widevineRootPublicKey, signed.DrmCertificate, signed.Signature); err != nil {
		return nil, wrapInputErrorf(err, "service certificate signature invalid")
	}
	cert, err := protocol.UnmarshalDrmCertificate(signed.DrmCertificate)
	if err != nil {
		return nil, wrapInputErrorf(err, "decode drm certificate")
	}
	return cert, nil
}

func certificatePublicKey(cert *protocol.DrmCertificate) (*rsa.PublicKey, *Error) {
	pub, err := x509.ParsePKCS1PublicKey(cert.PublicKey)
	if err != nil {
		return nil, wrapInputErrorf(err, "parse drm certificate public key")
	}
	return pub, nil
}
