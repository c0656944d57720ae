package widevine

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cooomma/go-widevine/protocol"
	"github.com/Cooomma/go-widevine/wvcrypto"
)

func TestSetDefaultServiceCertificateSucceeds(t *testing.T) {
	s := NewSession()
	err := s.SetDefaultServiceCertificate()
	require.Nil(t, err)
	require.NotNil(t, s.pinnedCert)
	assert.Equal(t, "widevine_test", s.pinnedCert.ProviderID)
}

func TestSetServiceCertificateFromSignedMessage(t *testing.T) {
	wrapped := &protocol.SignedMessage{
		Type:    protocol.MessageTypeServiceCertificate,
		HasType: true,
		Msg:     defaultServiceCertificateBytes,
	}
	s := NewSession()
	err := s.SetServiceCertificateFromSignedMessage(wrapped.Marshal())
	require.Nil(t, err)
	require.NotNil(t, s.pinnedCert)
}

// TestSetServiceCertificateRejectsWrongRootKey stands in for the
// "replace the bundled root key with an unrelated key" scenario: a
// certificate signed by some other RSA key must not verify under
// widevineRootPublicKey.
func TestSetServiceCertificateRejectsWrongRootKey(t *testing.T) {
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cert := &protocol.DrmCertificate{
		SerialNumber:  []byte{0x00, 0x00, 0x00, 0x02},
		PublicKey:     x509.MarshalPKCS1PublicKey(&otherKey.PublicKey),
		ProviderID:    "rogue",
		HasProviderID: true,
	}
	certBytes := cert.Marshal()
	sig, serr := wvcrypto.SignPSS(otherKey, certBytes)
	require.NoError(t, serr)

	signed := &protocol.SignedDrmCertificate{DrmCertificate: certBytes, Signature: sig}

	s := NewSession()
	cerr := s.SetServiceCertificate(signed.Marshal())
	require.NotNil(t, cerr)
	assert.Equal(t, KindInput, cerr.Kind)
	assert.Nil(t, s.pinnedCert)
}

func TestSetServiceCertificateRejectsMalformedInput(t *testing.T) {
	s := NewSession()
	err := s.SetServiceCertificate([]byte{0xff, 0xff, 0xff})
	require.NotNil(t, err)
	assert.Equal(t, KindInput, err.Kind)
}
