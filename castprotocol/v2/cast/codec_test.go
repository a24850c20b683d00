package cast_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
	pb "go2tv.app/go2tv/v2/castprotocol/v2/cast/proto"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	assert := require.New(t)

	protocolVersion := pb.CastMessage_CASTV2_1_0
	payloadType := pb.CastMessage_STRING
	source := "sender-0"
	dest := "receiver-0"
	ns := cast.NamespaceReceiver
	body := `{"type":"GET_STATUS","requestId":42}`

	msg := &pb.CastMessage{
		ProtocolVersion: &protocolVersion,
		SourceId:        &source,
		DestinationId:   &dest,
		Namespace:       &ns,
		PayloadType:     &payloadType,
		PayloadUtf8:     &body,
	}

	var buf bytes.Buffer
	assert.NoError(cast.NewEncoder(&buf).Encode(msg))

	got, err := cast.NewDecoder(&buf).Decode()
	assert.NoError(err)
	assert.Equal(source, got.GetSourceId())
	assert.Equal(dest, got.GetDestinationId())
	assert.Equal(ns, got.GetNamespace())
	assert.Equal(body, got.GetPayloadUtf8())
}

func TestDecodeUnderflowEOF(t *testing.T) {
	assert := require.New(t)

	// A length prefix promising 100 bytes but only 3 delivered.
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 100})
	buf.Write([]byte{1, 2, 3})

	_, err := cast.NewDecoder(&buf).Decode()
	assert.ErrorIs(err, cast.ErrUnderflowEOF)
}

func TestDecodeEmptyBodyRejected(t *testing.T) {
	assert := require.New(t)

	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0}) // length=0, no body bytes follow

	_, err := cast.NewDecoder(&buf).Decode()
	assert.ErrorIs(err, cast.ErrDecode)
}

func TestDecodeOversizeFrame(t *testing.T) {
	assert := require.New(t)

	var buf bytes.Buffer
	buf.Write([]byte{0, 1, 0, 1}) // 0x00010001 = 65537 > MaxFrameSize (65536)

	_, err := cast.NewDecoder(&buf).Decode()
	assert.ErrorIs(err, cast.ErrOversizeFrame)
}

func TestEncodeOversizeFrame(t *testing.T) {
	assert := require.New(t)

	protocolVersion := pb.CastMessage_CASTV2_1_0
	payloadType := pb.CastMessage_STRING
	source := "sender-0"
	dest := "receiver-0"
	ns := cast.NamespaceMedia
	body := strings.Repeat("x", cast.MaxFrameSize+1)

	msg := &pb.CastMessage{
		ProtocolVersion: &protocolVersion,
		SourceId:        &source,
		DestinationId:   &dest,
		Namespace:       &ns,
		PayloadType:     &payloadType,
		PayloadUtf8:     &body,
	}

	var buf bytes.Buffer
	err := cast.NewEncoder(&buf).Encode(msg)
	assert.ErrorIs(err, cast.ErrOversizeFrame)
}

func TestEncodeRequiresSourceDestinationNamespace(t *testing.T) {
	assert := require.New(t)

	msg := &pb.CastMessage{}
	_, err := msg.Marshal()
	assert.Error(err)
}
