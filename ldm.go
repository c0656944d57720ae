package widevine

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/Cooomma/go-widevine/protocol"
)

// LicenseDecryptionModule bundles a provisioned device's credentials:
// its RSA private key and its serialized ClientIdentification. It is
// immutable after construction and safe to share by reference across
// concurrent Sessions — generation/attestation of the credentials
// themselves is outside this package.
type LicenseDecryptionModule struct {
	privateKey         *rsa.PrivateKey
	identificationBlob []byte
	vmpBlob            []byte
}

// NewLicenseDecryptionModule parses privateKeyPEM (PKCS#1 or PKCS#8)
// and checks identificationBlob decodes as well-formed protobuf. The
// blob's device-specific fields are not interpreted; it is carried
// and embedded verbatim as LicenseRequest.client_id.
func NewLicenseDecryptionModule(privateKeyPEM, identificationBlob, vmpBlob []byte) (*LicenseDecryptionModule, *Error) {
	key, err := parsePrivateKeyPEM(privateKeyPEM)
	if err != nil {
		return nil, wrapInputErrorf(err, "parse device private key")
	}
	if err := protocol.ValidateMessage(identificationBlob); err != nil {
		return nil, wrapInputErrorf(err, "device identification blob is not well-formed")
	}
	return &LicenseDecryptionModule{
		privateKey:         key,
		identificationBlob: append([]byte{}, identificationBlob...),
		vmpBlob:            append([]byte{}, vmpBlob...),
	}, nil
}

func parsePrivateKeyPEM(raw []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in device private key")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse PKCS#8 device private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("device private key is not RSA")
	}
	return key, nil
}
