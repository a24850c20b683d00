// Package proto is a hand-authored, protoc-free encoding of the Cast
// wire envelope (the public `CastMessage` schema used by every Cast
// receiver: urn:x-cast:com.google.cast.*). Field numbers and semantics
// match the protobuf definition shipped with the Cast SDK.
package proto

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
)

// CastMessage_ProtocolVersion mirrors the wire enum of the same name.
type CastMessage_ProtocolVersion int32

const (
	CastMessage_CASTV2_1_0 CastMessage_ProtocolVersion = 0
)

// CastMessage_PayloadType mirrors the wire enum of the same name.
type CastMessage_PayloadType int32

const (
	CastMessage_STRING CastMessage_PayloadType = 0
	CastMessage_BINARY CastMessage_PayloadType = 1
)

// Field numbers from the Cast SDK's cast_channel.proto.
const (
	fieldProtocolVersion = 1
	fieldSourceID        = 2
	fieldDestinationID   = 3
	fieldNamespace       = 4
	fieldPayloadType     = 5
	fieldPayloadUTF8     = 6
	fieldPayloadBinary   = 7
)

// CastMessage is the framed envelope carried by every Cast connection.
// Optional fields use pointers so their zero value is distinguishable
// from "not set" the same way protoc-gen-go generates proto2 messages.
type CastMessage struct {
	ProtocolVersion *CastMessage_ProtocolVersion
	SourceId        *string
	DestinationId   *string
	Namespace       *string
	PayloadType     *CastMessage_PayloadType
	PayloadUtf8     *string
	PayloadBinary   []byte
}

func (m *CastMessage) GetProtocolVersion() CastMessage_ProtocolVersion {
	if m == nil || m.ProtocolVersion == nil {
		return CastMessage_CASTV2_1_0
	}
	return *m.ProtocolVersion
}

func (m *CastMessage) GetSourceId() string {
	if m == nil || m.SourceId == nil {
		return ""
	}
	return *m.SourceId
}

func (m *CastMessage) GetDestinationId() string {
	if m == nil || m.DestinationId == nil {
		return ""
	}
	return *m.DestinationId
}

func (m *CastMessage) GetNamespace() string {
	if m == nil || m.Namespace == nil {
		return ""
	}
	return *m.Namespace
}

func (m *CastMessage) GetPayloadType() CastMessage_PayloadType {
	if m == nil || m.PayloadType == nil {
		return CastMessage_STRING
	}
	return *m.PayloadType
}

func (m *CastMessage) GetPayloadUtf8() string {
	if m == nil || m.PayloadUtf8 == nil {
		return ""
	}
	return *m.PayloadUtf8
}

func (m *CastMessage) Reset()         { *m = CastMessage{} }
func (m *CastMessage) String() string { return fmt.Sprintf("%+v", *m) }
func (*CastMessage) ProtoMessage()    {}

// Marshal encodes the envelope as a protobuf message using gogo/protobuf's
// low-level wire primitives directly, since this repository generates no
// code via protoc for this schema.
func (m *CastMessage) Marshal() ([]byte, error) {
	if m.SourceId == nil {
		return nil, fmt.Errorf("cast: proto: source_id is required")
	}
	if m.DestinationId == nil {
		return nil, fmt.Errorf("cast: proto: destination_id is required")
	}
	if m.Namespace == nil {
		return nil, fmt.Errorf("cast: proto: namespace is required")
	}

	buf := proto.NewBuffer(nil)

	if err := buf.EncodeVarint(fieldProtocolVersion<<3 | 0); err != nil {
		return nil, err
	}
	if err := buf.EncodeVarint(uint64(m.GetProtocolVersion())); err != nil {
		return nil, err
	}

	if err := buf.EncodeVarint(fieldSourceID<<3 | 2); err != nil {
		return nil, err
	}
	if err := buf.EncodeStringBytes(*m.SourceId); err != nil {
		return nil, err
	}

	if err := buf.EncodeVarint(fieldDestinationID<<3 | 2); err != nil {
		return nil, err
	}
	if err := buf.EncodeStringBytes(*m.DestinationId); err != nil {
		return nil, err
	}

	if err := buf.EncodeVarint(fieldNamespace<<3 | 2); err != nil {
		return nil, err
	}
	if err := buf.EncodeStringBytes(*m.Namespace); err != nil {
		return nil, err
	}

	if err := buf.EncodeVarint(fieldPayloadType<<3 | 0); err != nil {
		return nil, err
	}
	if err := buf.EncodeVarint(uint64(m.GetPayloadType())); err != nil {
		return nil, err
	}

	if m.PayloadUtf8 != nil {
		if err := buf.EncodeVarint(fieldPayloadUTF8<<3 | 2); err != nil {
			return nil, err
		}
		if err := buf.EncodeStringBytes(*m.PayloadUtf8); err != nil {
			return nil, err
		}
	}

	if m.PayloadBinary != nil {
		if err := buf.EncodeVarint(fieldPayloadBinary<<3 | 2); err != nil {
			return nil, err
		}
		if err := buf.EncodeRawBytes(m.PayloadBinary); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes a protobuf-encoded envelope produced by Marshal (or by
// any Cast-compliant sender).
func (m *CastMessage) Unmarshal(data []byte) error {
	buf := proto.NewBuffer(data)
	*m = CastMessage{}

	for buf.Len() > 0 {
		tag, err := buf.DecodeVarint()
		if err != nil {
			return fmt.Errorf("cast: proto: decode tag: %w", err)
		}
		field := tag >> 3
		wire := tag & 0x7

		switch field {
		case fieldProtocolVersion:
			v, err := buf.DecodeVarint()
			if err != nil {
				return err
			}
			pv := CastMessage_ProtocolVersion(v)
			m.ProtocolVersion = &pv
		case fieldSourceID:
			s, err := buf.DecodeStringBytes()
			if err != nil {
				return err
			}
			m.SourceId = &s
		case fieldDestinationID:
			s, err := buf.DecodeStringBytes()
			if err != nil {
				return err
			}
			m.DestinationId = &s
		case fieldNamespace:
			s, err := buf.DecodeStringBytes()
			if err != nil {
				return err
			}
			m.Namespace = &s
		case fieldPayloadType:
			v, err := buf.DecodeVarint()
			if err != nil {
				return err
			}
			pt := CastMessage_PayloadType(v)
			m.PayloadType = &pt
		case fieldPayloadUTF8:
			s, err := buf.DecodeStringBytes()
			if err != nil {
				return err
			}
			m.PayloadUtf8 = &s
		case fieldPayloadBinary:
			b, err := buf.DecodeRawBytes(true)
			if err != nil {
				return err
			}
			m.PayloadBinary = b
		default:
			if err := skipField(buf, wire); err != nil {
				return fmt.Errorf("cast: proto: skip unknown field %d: %w", field, err)
			}
		}
	}

	if m.SourceId == nil {
		return fmt.Errorf("cast: proto: source_id is required")
	}
	if m.DestinationId == nil {
		return fmt.Errorf("cast: proto: destination_id is required")
	}
	if m.Namespace == nil {
		return fmt.Errorf("cast: proto: namespace is required")
	}
	return nil
}

func skipField(buf *proto.Buffer, wire uint64) error {
	switch wire {
	case 0:
		_, err := buf.DecodeVarint()
		return err
	case 2:
		_, err := buf.DecodeRawBytes(true)
		return err
	case 5:
		_, err := buf.DecodeFixed32()
		return err
	case 1:
		_, err := buf.DecodeFixed64()
		return err
	default:
		return fmt.Errorf("unsupported wire type %d", wire)
	}
}
