package protocol

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// field is one decoded (number, wire type, raw tag+value bytes,
// and—for length-delimited/varint fields—the unwrapped content).
type field struct {
	num     protowire.Number
	typ     protowire.Type
	raw     []byte // tag + value, exactly as it appeared on the wire
	content []byte // BytesType payload, or nil for other wire types
	varint  uint64
}

// walkFields scans data as a flat sequence of protobuf v2 fields,
// calling visit for each. It never accepts a partial decode: any
// malformed tag, length or truncated value fails the whole decode.
func walkFields(data []byte, visit func(field) error) error {
	for len(data) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(data)
		if tagLen < 0 {
			return decodeErrorf("invalid tag: %v", protowire.ParseError(tagLen))
		}
		var valLen int
		var content []byte
		var v uint64
		switch typ {
		case protowire.VarintType:
			v, valLen = protowire.ConsumeVarint(data[tagLen:])
		case protowire.Fixed32Type:
			var v32 uint32
			v32, valLen = protowire.ConsumeFixed32(data[tagLen:])
			v = uint64(v32)
		case protowire.Fixed64Type:
			v, valLen = protowire.ConsumeFixed64(data[tagLen:])
		case protowire.BytesType:
			content, valLen = protowire.ConsumeBytes(data[tagLen:])
		case protowire.StartGroupType:
			valLen = protowire.ConsumeFieldValue(num, typ, data[tagLen:])
		default:
			return decodeErrorf("unsupported wire type %d on field %d", typ, num)
		}
		if valLen < 0 {
			return decodeErrorf("truncated field %d: %v", num, protowire.ParseError(valLen))
		}
		total := tagLen + valLen
		f := field{num: num, typ: typ, raw: data[:total], content: content, varint: v}
		if err := visit(f); err != nil {
			return err
		}
		data = data[total:]
	}
	return nil
}

// ValidateMessage reports whether data is a well-formed (if opaque)
// sequence of protobuf v2 fields, without interpreting any of them.
// Used to sanity-check blobs (e.g. ClientIdentification) this module
// embeds verbatim without modeling their full schema.
func ValidateMessage(data []byte) error {
	return walkFields(data, func(field) error { return nil })
}

// UnmarshalSignedMessage decodes a SignedMessage.
func UnmarshalSignedMessage(data []byte) (*SignedMessage, error) {
	m := &SignedMessage{}
	err := walkFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.Type = MessageType(f.varint)
			m.HasType = true
		case 2:
			m.Msg = f.content
		case 3:
			m.Signature = f.content
		case 4:
			m.SessionKey = f.content
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalSignedDrmCertificate decodes a SignedDrmCertificate.
func UnmarshalSignedDrmCertificate(data []byte) (*SignedDrmCertificate, error) {
	m := &SignedDrmCertificate{}
	err := walkFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.DrmCertificate = f.content
		case 2:
			m.Signature = f.content
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if m.DrmCertificate == nil || m.Signature == nil {
		return nil, decodeErrorf("signed drm certificate missing drm_certificate or signature")
	}
	return m, nil
}

// UnmarshalDrmCertificate decodes a DrmCertificate, preserving fields
// this module doesn't model so a re-Marshal round-trips them.
func UnmarshalDrmCertificate(data []byte) (*DrmCertificate, error) {
	m := &DrmCertificate{}
	err := walkFields(data, func(f field) error {
		switch f.num {
		case 2:
			m.SerialNumber = f.content
		case 4:
			m.PublicKey = f.content
		case 7:
			m.ProviderID = string(f.content)
			m.HasProviderID = true
		default:
			m.Unknown = append(m.Unknown, RawField{Number: uint32(f.num), WireVal: f.raw})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalLicense decodes a License.
func UnmarshalLicense(data []byte) (*License, error) {
	m := &License{}
	err := walkFields(data, func(f field) error {
		if f.num == 3 {
			kc, err := UnmarshalKeyContainer(f.content)
			if err != nil {
				return err
			}
			m.Keys = append(m.Keys, *kc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalKeyContainer decodes a License.KeyContainer.
func UnmarshalKeyContainer(data []byte) (*KeyContainer, error) {
	m := &KeyContainer{}
	err := walkFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.ID = f.content
		case 2:
			m.IV = f.content
		case 3:
			m.Key = f.content
		case 4:
			m.Type = KeyType(f.varint)
			m.HasType = true
		case 5:
			m.Level = SecurityLevel(f.varint)
			m.HasLevel = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalLicenseRequest decodes a LicenseRequest. Exposed for tests
// that want to assert on the shape of a produced request.
func UnmarshalLicenseRequest(data []byte) (*LicenseRequest, error) {
	m := &LicenseRequest{}
	err := walkFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.ClientID = f.content
			m.HasClientID = true
		case 2:
			ci, err := unmarshalContentIdentification(f.content)
			if err != nil {
				return err
			}
			m.ContentID = ci
		case 3:
			m.Type = RequestType(f.varint)
			m.HasType = true
		case 4:
			m.RequestTime = int64(f.varint)
			m.HasRequestTime = true
		case 6:
			m.ProtocolVersion = ProtocolVersion(f.varint)
			m.HasProtocolVersion = true
		case 7:
			m.KeyControlNonce = uint32(f.varint)
			m.HasKeyControlNonce = true
		case 8:
			eci, err := unmarshalEncryptedClientIdentification(f.content)
			if err != nil {
				return err
			}
			m.EncryptedClientID = eci
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func unmarshalContentIdentification(data []byte) (*ContentIdentification, error) {
	m := &ContentIdentification{}
	err := walkFields(data, func(f field) error {
		if f.num == 1 {
			pssh, err := unmarshalWidevinePsshData(f.content)
			if err != nil {
				return err
			}
			m.WidevinePsshData = pssh
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func unmarshalWidevinePsshData(data []byte) (*WidevinePsshData, error) {
	m := &WidevinePsshData{}
	err := walkFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.PsshData = append(m.PsshData, f.content)
		case 2:
			m.LicenseType = LicenseType(f.varint)
			m.HasLicenseType = true
		case 3:
			m.RequestID = f.content
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func unmarshalEncryptedClientIdentification(data []byte) (*EncryptedClientIdentification, error) {
	m := &EncryptedClientIdentification{}
	err := walkFields(data, func(f field) error {
		switch f.num {
		case 1:
			m.ProviderID = string(f.content)
		case 2:
			m.ServiceCertificateSerialNumber = f.content
		case 3:
			m.EncryptedClientID = f.content
		case 4:
			m.EncryptedClientIDIv = f.content
		case 5:
			m.EncryptedPrivacyKey = f.content
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
