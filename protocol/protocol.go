// Package protocol implements the Widevine license-protocol message
// schema on the wire: a stable length-prefixed tagged format
// equivalent to Google Protocol Buffers v2. Only the fields this
// module's core actually uses are modeled; every decoder tolerates
// unrecognized fields rather than rejecting them, since real servers
// routinely send fields outside this subset. DrmCertificate keeps
// them for re-encoding; the other decoders skip them.
package protocol

import "fmt"

// MessageType is SignedMessage.type.
type MessageType int32

const (
	MessageTypeLicenseRequest               MessageType = 1
	MessageTypeLicense                      MessageType = 2
	MessageTypeErrorResponse                MessageType = 3
	MessageTypeServiceCertificateRequest    MessageType = 4
	MessageTypeServiceCertificate           MessageType = 5
)

// LicenseType is WidevinePsshData.license_type and the type carried
// in a license request's content identification.
type LicenseType int32

const (
	LicenseTypeStreaming LicenseType = 1
	LicenseTypeOffline   LicenseType = 2
)

// RequestType is LicenseRequest.type.
type RequestType int32

const (
	RequestTypeNew     RequestType = 1
	RequestTypeRenewal RequestType = 2
	RequestTypeRelease RequestType = 3
)

// ProtocolVersion is LicenseRequest.protocol_version.
type ProtocolVersion int32

const (
	ProtocolVersion20 ProtocolVersion = 20
	ProtocolVersion21 ProtocolVersion = 21
)

// KeyType is License.KeyContainer.type.
type KeyType int32

const (
	KeyTypeSigning          KeyType = 1
	KeyTypeContent          KeyType = 2
	KeyTypeKeyControl       KeyType = 3
	KeyTypeOperatorSession  KeyType = 4
	KeyTypeEntitlement      KeyType = 5
)

// String returns the canonical upper-snake-case enum name used by the
// Widevine schema, e.g. for a KeyContainer with no id.
func (t KeyType) String() string {
	switch t {
	case KeyTypeSigning:
		return "SIGNING"
	case KeyTypeContent:
		return "CONTENT"
	case KeyTypeKeyControl:
		return "KEY_CONTROL"
	case KeyTypeOperatorSession:
		return "OPERATOR_SESSION"
	case KeyTypeEntitlement:
		return "ENTITLEMENT"
	default:
		return fmt.Sprintf("UNKNOWN_KEY_TYPE_%d", int32(t))
	}
}

// SecurityLevel is License.KeyContainer.level.
type SecurityLevel int32

const (
	SecurityLevelSwSecureCrypto SecurityLevel = 1
	SecurityLevelSwSecureDecode SecurityLevel = 2
	SecurityLevelHwSecureCrypto SecurityLevel = 3
	SecurityLevelHwSecureDecode SecurityLevel = 4
	SecurityLevelHwSecureAll    SecurityLevel = 5
)

// DecodeError reports malformed wire input. The core never accepts a
// partial decode.
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string { return "protocol: decode: " + e.Message }

func decodeErrorf(format string, args ...interface{}) error {
	return &DecodeError{Message: fmt.Sprintf(format, args...)}
}
