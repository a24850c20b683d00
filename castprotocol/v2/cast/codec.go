package cast

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	pb "go2tv.app/go2tv/v2/castprotocol/v2/cast/proto"
)

// frameHeaderLen is the size of the big-endian uint32 length prefix.
const frameHeaderLen = 4

// Encoder writes length-prefixed CastMessage frames to an underlying
// byte stream (a *tls.Conn in production, any io.Writer in tests).
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Encode serializes msg and writes exactly one "length || bytes" frame.
// It fails with ErrOversizeFrame if the serialized envelope exceeds
// MaxFrameSize, and with ErrEncode if protobuf serialization fails.
func (e *Encoder) Encode(msg *pb.CastMessage) error {
	body, err := msg.Marshal()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if len(body) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrOversizeFrame, len(body))
	}

	frame := make([]byte, frameHeaderLen+len(body))
	binary.BigEndian.PutUint32(frame, uint32(len(body)))
	copy(frame[frameHeaderLen:], body)

	if _, err := e.w.Write(frame); err != nil {
		return fmt.Errorf("cast: write frame: %w", err)
	}
	return nil
}

// Decoder reads length-prefixed CastMessage frames from an underlying
// byte stream.
type Decoder struct {
	r io.Reader
}

func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: r} }

// Decode reads exactly one frame and returns its decoded envelope. It
// fails with ErrUnderflowEOF if the stream closes mid-frame, with
// ErrOversizeFrame if the declared length exceeds MaxFrameSize, and with
// ErrDecode if protobuf parsing fails.
func (d *Decoder) Decode() (*pb.CastMessage, error) {
	header := make([]byte, frameHeaderLen)
	if _, err := io.ReadFull(d.r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrUnderflowEOF
		}
		return nil, fmt.Errorf("cast: read frame header: %w", err)
	}

	length := binary.BigEndian.Uint32(header)
	if length > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrOversizeFrame, length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(d.r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrUnderflowEOF
		}
		return nil, fmt.Errorf("cast: read frame body: %w", err)
	}

	msg := &pb.CastMessage{}
	if err := msg.Unmarshal(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return msg, nil
}
