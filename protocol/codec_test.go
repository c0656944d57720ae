package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLicenseRequestRoundTrip(t *testing.T) {
	clientID := appendBytesField(nil, 1, []byte("device-client-id"))

	req := &LicenseRequest{
		ClientID:    clientID,
		HasClientID: true,
		ContentID: &ContentIdentification{
			WidevinePsshData: &WidevinePsshData{
				PsshData:       [][]byte{[]byte("pssh-tail")},
				LicenseType:    LicenseTypeStreaming,
				HasLicenseType: true,
				RequestID:      []byte("0123456789abcdef"),
			},
		},
		Type:               RequestTypeNew,
		HasType:            true,
		RequestTime:        1700000000,
		HasRequestTime:     true,
		ProtocolVersion:    ProtocolVersion21,
		HasProtocolVersion: true,
		KeyControlNonce:    0xdeadbeef,
		HasKeyControlNonce: true,
	}

	encoded := req.Marshal()
	decoded, err := UnmarshalLicenseRequest(encoded)
	require.NoError(t, err)

	assert.Equal(t, req.ClientID, decoded.ClientID)
	assert.True(t, decoded.HasClientID)
	assert.Nil(t, decoded.EncryptedClientID)
	require.NotNil(t, decoded.ContentID)
	require.NotNil(t, decoded.ContentID.WidevinePsshData)
	assert.Equal(t, req.ContentID.WidevinePsshData.PsshData, decoded.ContentID.WidevinePsshData.PsshData)
	assert.Equal(t, LicenseTypeStreaming, decoded.ContentID.WidevinePsshData.LicenseType)
	assert.Equal(t, req.ContentID.WidevinePsshData.RequestID, decoded.ContentID.WidevinePsshData.RequestID)
	assert.Equal(t, RequestTypeNew, decoded.Type)
	assert.EqualValues(t, 1700000000, decoded.RequestTime)
	assert.Equal(t, ProtocolVersion21, decoded.ProtocolVersion)
	assert.EqualValues(t, 0xdeadbeef, decoded.KeyControlNonce)

	// Re-encoding the decoded message must reproduce the same bytes.
	assert.Equal(t, encoded, decoded.Marshal())
}

func TestLicenseRequestEncryptedClientIDExclusive(t *testing.T) {
	req := &LicenseRequest{
		EncryptedClientID: &EncryptedClientIdentification{
			ProviderID:                     "widevine_test",
			ServiceCertificateSerialNumber: []byte{1, 2, 3},
			EncryptedClientID:              []byte("ciphertext"),
			EncryptedClientIDIv:            []byte("0123456789abcdef"),
			EncryptedPrivacyKey:            []byte("wrapped-key"),
		},
	}
	encoded := req.Marshal()
	decoded, err := UnmarshalLicenseRequest(encoded)
	require.NoError(t, err)
	assert.False(t, decoded.HasClientID)
	require.NotNil(t, decoded.EncryptedClientID)
	assert.Equal(t, "widevine_test", decoded.EncryptedClientID.ProviderID)
	assert.Equal(t, []byte("ciphertext"), decoded.EncryptedClientID.EncryptedClientID)
}

func TestSignedMessageRoundTrip(t *testing.T) {
	sm := &SignedMessage{
		Type:       MessageTypeLicense,
		HasType:    true,
		Msg:        []byte("inner-license-bytes"),
		Signature:  []byte("hmac-signature"),
		SessionKey: []byte("oaep-ciphertext"),
	}
	data := sm.Marshal()
	decoded, err := UnmarshalSignedMessage(data)
	require.NoError(t, err)
	assert.Equal(t, sm, decoded)
}

func TestSignedDrmCertificateAndDrmCertificateRoundTrip(t *testing.T) {
	cert := &DrmCertificate{
		SerialNumber:  []byte{0xaa, 0xbb},
		PublicKey:     []byte("pkcs1-der-public-key"),
		ProviderID:    "widevine_test",
		HasProviderID: true,
	}
	certBytes := cert.Marshal()

	signed := &SignedDrmCertificate{
		DrmCertificate: certBytes,
		Signature:      []byte("root-signature"),
	}
	signedBytes := signed.Marshal()

	decodedSigned, err := UnmarshalSignedDrmCertificate(signedBytes)
	require.NoError(t, err)
	assert.Equal(t, signed, decodedSigned)

	decodedCert, err := UnmarshalDrmCertificate(decodedSigned.DrmCertificate)
	require.NoError(t, err)
	assert.Equal(t, cert.SerialNumber, decodedCert.SerialNumber)
	assert.Equal(t, cert.PublicKey, decodedCert.PublicKey)
	assert.Equal(t, cert.ProviderID, decodedCert.ProviderID)
	assert.Empty(t, decodedCert.Unknown)
}

func TestDrmCertificatePreservesUnknownFields(t *testing.T) {
	// A field number this module doesn't model (e.g. system_id = 5,
	// varint wire type) must survive a decode/re-encode round trip.
	raw := appendBytesField(nil, 2, []byte{1})
	raw = append(raw, appendVarintField(nil, 5, 42)...)

	cert, err := UnmarshalDrmCertificate(raw)
	require.NoError(t, err)
	require.Len(t, cert.Unknown, 1)
	assert.Equal(t, uint32(5), cert.Unknown[0].Number)
	assert.Equal(t, raw, cert.Marshal())
}

func TestLicenseRoundTrip(t *testing.T) {
	lic := &License{
		Keys: []KeyContainer{
			{
				ID:       []byte{0x01, 0x02},
				IV:       []byte("0123456789abcdef"),
				Key:      []byte("encrypted-key-bytes"),
				Type:     KeyTypeContent,
				HasType:  true,
				Level:    SecurityLevelSwSecureCrypto,
				HasLevel: true,
			},
			{
				Type:    KeyTypeSigning,
				HasType: true,
			},
		},
	}
	data := lic.Marshal()
	decoded, err := UnmarshalLicense(data)
	require.NoError(t, err)
	require.Len(t, decoded.Keys, 2)
	assert.Equal(t, lic.Keys[0].ID, decoded.Keys[0].ID)
	assert.Equal(t, "CONTENT", decoded.Keys[0].Type.String())
	assert.Equal(t, "SIGNING", decoded.Keys[1].Type.String())
}

func TestValidateMessageRejectsTruncatedInput(t *testing.T) {
	good := appendBytesField(nil, 1, []byte("hello"))
	require.NoError(t, ValidateMessage(good))

	truncated := good[:len(good)-2]
	assert.Error(t, ValidateMessage(truncated))
}

func TestUnmarshalSignedDrmCertificateRejectsMissingFields(t *testing.T) {
	_, err := UnmarshalSignedDrmCertificate(appendBytesField(nil, 1, []byte("cert-only")))
	assert.Error(t, err)
}
