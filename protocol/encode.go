package protocol

import (
	"google.golang.org/protobuf/encoding/protowire"
)

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	return appendBytesField(b, num, []byte(v))
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	return appendBytesField(b, num, msg)
}

// Marshal encodes a SignedMessage.
func (m *SignedMessage) Marshal() []byte {
	var b []byte
	if m.HasType {
		b = appendVarintField(b, 1, uint64(m.Type))
	}
	if m.Msg != nil {
		b = appendBytesField(b, 2, m.Msg)
	}
	if m.Signature != nil {
		b = appendBytesField(b, 3, m.Signature)
	}
	if m.SessionKey != nil {
		b = appendBytesField(b, 4, m.SessionKey)
	}
	return b
}

// Marshal encodes a SignedDrmCertificate.
func (m *SignedDrmCertificate) Marshal() []byte {
	var b []byte
	if m.DrmCertificate != nil {
		b = appendBytesField(b, 1, m.DrmCertificate)
	}
	if m.Signature != nil {
		b = appendBytesField(b, 2, m.Signature)
	}
	return b
}

// Marshal encodes a DrmCertificate.
func (m *DrmCertificate) Marshal() []byte {
	var b []byte
	if m.SerialNumber != nil {
		b = appendBytesField(b, 2, m.SerialNumber)
	}
	if m.PublicKey != nil {
		b = appendBytesField(b, 4, m.PublicKey)
	}
	if m.HasProviderID {
		b = appendStringField(b, 7, m.ProviderID)
	}
	for _, f := range m.Unknown {
		b = append(b, f.WireVal...)
	}
	return b
}

// Marshal encodes an EncryptedClientIdentification.
func (m *EncryptedClientIdentification) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.ProviderID)
	b = appendBytesField(b, 2, m.ServiceCertificateSerialNumber)
	b = appendBytesField(b, 3, m.EncryptedClientID)
	b = appendBytesField(b, 4, m.EncryptedClientIDIv)
	b = appendBytesField(b, 5, m.EncryptedPrivacyKey)
	return b
}

// Marshal encodes a WidevinePsshData.
func (m *WidevinePsshData) Marshal() []byte {
	var b []byte
	for _, d := range m.PsshData {
		b = appendBytesField(b, 1, d)
	}
	if m.HasLicenseType {
		b = appendVarintField(b, 2, uint64(m.LicenseType))
	}
	if m.RequestID != nil {
		b = appendBytesField(b, 3, m.RequestID)
	}
	return b
}

// Marshal encodes a ContentIdentification.
func (m *ContentIdentification) Marshal() []byte {
	var b []byte
	if m.WidevinePsshData != nil {
		b = appendMessageField(b, 1, m.WidevinePsshData.Marshal())
	}
	return b
}

// Marshal encodes a LicenseRequest. Field order follows the schema:
// client_id(1), content_id(2), type(3), request_time(4),
// protocol_version(6), key_control_nonce(7), encrypted_client_id(8).
// Field 5 is the deprecated key_control_nonce and is never written.
func (m *LicenseRequest) Marshal() []byte {
	var b []byte
	if m.HasClientID {
		b = appendMessageField(b, 1, m.ClientID)
	}
	if m.ContentID != nil {
		b = appendMessageField(b, 2, m.ContentID.Marshal())
	}
	if m.HasType {
		b = appendVarintField(b, 3, uint64(m.Type))
	}
	if m.HasRequestTime {
		b = appendVarintField(b, 4, uint64(m.RequestTime))
	}
	if m.HasProtocolVersion {
		b = appendVarintField(b, 6, uint64(m.ProtocolVersion))
	}
	if m.HasKeyControlNonce {
		b = appendVarintField(b, 7, uint64(m.KeyControlNonce))
	}
	if m.EncryptedClientID != nil {
		b = appendMessageField(b, 8, m.EncryptedClientID.Marshal())
	}
	return b
}

// Marshal encodes a KeyContainer.
func (m *KeyContainer) Marshal() []byte {
	var b []byte
	if m.ID != nil {
		b = appendBytesField(b, 1, m.ID)
	}
	if m.IV != nil {
		b = appendBytesField(b, 2, m.IV)
	}
	if m.Key != nil {
		b = appendBytesField(b, 3, m.Key)
	}
	if m.HasType {
		b = appendVarintField(b, 4, uint64(m.Type))
	}
	if m.HasLevel {
		b = appendVarintField(b, 5, uint64(m.Level))
	}
	return b
}

// Marshal encodes a License.
func (m *License) Marshal() []byte {
	var b []byte
	for i := range m.Keys {
		b = appendMessageField(b, 3, m.Keys[i].Marshal())
	}
	return b
}
