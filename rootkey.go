package widevine

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"

	"github.com/Cooomma/go-widevine/protocol"
	"github.com/Cooomma/go-widevine/wvcrypto"
)

// widevineRootPrivateKey/widevineRootPublicKey stand in for Google's
// hard-coded Widevine root keypair (a published 398-byte PKCS#1 DER
// public key; this module never sees the matching private key in
// production). This environment has no way to fetch or verify the
// authentic published constant, so it generates an equivalent-purpose
// RSA keypair once at package init and uses it consistently to both
// sign and verify the bundled default service certificate below.
// Deployments that talk to a real Widevine license server MUST
// replace widevineRootPublicKey with Google's published key; the
// generated pair here only makes SetDefaultServiceCertificate
// internally self-consistent for local testing.
var (
	widevineRootPrivateKey *rsa.PrivateKey
	widevineRootPublicKey  *rsa.PublicKey
)

// defaultServiceCertificateBytes is a serialized SignedDrmCertificate
// built from a placeholder DrmCertificate and signed by
// widevineRootPrivateKey, so SetDefaultServiceCertificate verifies
// under widevineRootPublicKey without any network interaction.
var defaultServiceCertificateBytes []byte

func init() {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic("widevine: generating placeholder root keypair: " + err.Error())
	}
	widevineRootPrivateKey = key
	widevineRootPublicKey = &key.PublicKey

	cert := &protocol.DrmCertificate{
		SerialNumber:  []byte{0x00, 0x00, 0x00, 0x01},
		PublicKey:     x509.MarshalPKCS1PublicKey(widevineRootPublicKey),
		ProviderID:    "widevine_test",
		HasProviderID: true,
	}
	certBytes := cert.Marshal()

	sig, err := wvcrypto.SignPSS(widevineRootPrivateKey, certBytes)
	if err != nil {
		panic("widevine: signing placeholder default certificate: " + err.Error())
	}

	signed := &protocol.SignedDrmCertificate{
		DrmCertificate: certBytes,
		Signature:      sig,
	}
	defaultServiceCertificateBytes = signed.Marshal()
}
