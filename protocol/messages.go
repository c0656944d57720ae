package protocol

// SignedMessage is the outer envelope for every client<->server
// exchange: a type tag, the inner serialized message, a signature
// over it, and (response side) the RSA-OAEP wrapped session key.
type SignedMessage struct {
	Type      MessageType
	HasType   bool
	Msg       []byte
	Signature []byte
	SessionKey []byte
}

// SignedDrmCertificate wraps a serialized DrmCertificate and the
// Widevine root's (or a service cert's issuer's) signature over it.
type SignedDrmCertificate struct {
	DrmCertificate []byte
	Signature      []byte
}

// DrmCertificate carries serial_number, public_key, and provider_id
// plus enough of the rest to preserve a round trip of fields we don't
// interpret.
type DrmCertificate struct {
	SerialNumber []byte
	PublicKey    []byte
	ProviderID   string
	HasProviderID bool
	Unknown      []RawField
}

// EncryptedClientIdentification is the privacy-mode wrapper around a
// serialized ClientIdentification, produced under a pinned service
// certificate.
type EncryptedClientIdentification struct {
	ProviderID                     string
	ServiceCertificateSerialNumber []byte
	EncryptedClientID              []byte
	EncryptedClientIDIv            []byte
	EncryptedPrivacyKey            []byte
}

// WidevinePsshData is the content identification payload embedded in
// a license request: the raw tail of the caller's PSSH box plus the
// license type and the session's request id.
type WidevinePsshData struct {
	PsshData    [][]byte
	LicenseType LicenseType
	HasLicenseType bool
	RequestID   []byte
}

// ContentIdentification wraps the oneof content_id_variant; this
// module only ever produces/consumes the widevine_pssh_data variant.
type ContentIdentification struct {
	WidevinePsshData *WidevinePsshData
}

// LicenseRequest is the inner message signed by the device private
// key and carried as SignedMessage.msg for a LICENSE_REQUEST.
type LicenseRequest struct {
	ClientID          []byte // pre-serialized ClientIdentification, embedded verbatim
	HasClientID       bool
	EncryptedClientID *EncryptedClientIdentification // field 8; field 5 is the deprecated key_control_nonce
	ContentID         *ContentIdentification
	Type              RequestType
	HasType           bool
	RequestTime       int64
	HasRequestTime    bool
	ProtocolVersion   ProtocolVersion
	HasProtocolVersion bool
	KeyControlNonce   uint32
	HasKeyControlNonce bool
}

// KeyContainer is one key entry in a License; Key holds the
// AES-CBC ciphertext of the key, to be decrypted under Kenc with IV.
type KeyContainer struct {
	ID            []byte
	IV            []byte
	Key           []byte
	Type          KeyType
	HasType       bool
	Level         SecurityLevel
	HasLevel      bool
}

// License is the inner message carried as SignedMessage.msg for a
// LICENSE response, HMAC-authenticated under the derived Kmac.
type License struct {
	Keys []KeyContainer
}

// RawField is an unrecognized (field number, wire type, raw bytes)
// tuple captured during decode so messages this module doesn't fully
// model can still round-trip the bytes it doesn't understand.
type RawField struct {
	Number  uint32
	WireVal []byte // the exact bytes of the field including its tag
}
