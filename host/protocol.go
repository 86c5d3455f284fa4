// Package host carries predict calls across a process boundary: a gob stream
// over any io.Reader/io.Writer pair (pipes, stdin/stdout, sockets).
package host

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"sonic/nn"
	"sonic/tensor"
)

func init() {
	// Register types for gob encoding
	gob.Register(PredictRequest{})
	gob.Register(PredictResult{})
	gob.Register(ErrorPayload{})
}

// MessageType defines message types for the predict protocol
type MessageType int

const (
	MsgPredict MessageType = iota
	MsgResult
	MsgDone
	MsgError
)

func (t MessageType) String() string {
	switch t {
	case MsgPredict:
		return "predict"
	case MsgResult:
		return "result"
	case MsgDone:
		return "done"
	case MsgError:
		return "error"
	default:
		return fmt.Sprintf("MessageType(%d)", int(t))
	}
}

// Message represents a message in the predict protocol
type Message struct {
	Type    MessageType
	Payload interface{}
}

// PredictRequest asks the peer to run one input through its network.
type PredictRequest struct {
	ID    int
	Input []float32
}

// PredictResult answers the PredictRequest with the same ID.
type PredictResult struct {
	ID     int
	Output []float32
	Class  int
}

// ErrorPayload reports a failed request. For a dimension mismatch Layer,
// Expected and Actual are set and Mismatch is true.
type ErrorPayload struct {
	ID       int
	Message  string
	Mismatch bool
	Layer    int
	Expected int
	Actual   int
}

// Err rebuilds the error the peer reported. Dimension mismatches come back as
// *nn.DimensionMismatchError so callers can use errors.Is/As across the
// boundary.
func (p ErrorPayload) Err() error {
	if p.Mismatch {
		return &nn.DimensionMismatchError{Layer: p.Layer, Expected: p.Expected, Actual: p.Actual}
	}
	return &RemoteError{ID: p.ID, Message: p.Message}
}

// RemoteError is any non-mismatch failure reported by the peer.
type RemoteError struct {
	ID      int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error (request %d): %s", e.ID, e.Message)
}

// ErrUnexpectedMessage is returned when a well-formed message arrives out of
// turn. The stream itself is still usable.
var ErrUnexpectedMessage = errors.New("unexpected message")

// Protocol handles predict communication
type Protocol struct {
	encoder *gob.Encoder
	decoder *gob.Decoder
}

// NewProtocol creates a new protocol handler
func NewProtocol(r io.Reader, w io.Writer) *Protocol {
	p := &Protocol{}
	if w != nil {
		p.encoder = gob.NewEncoder(w)
	}
	if r != nil {
		p.decoder = gob.NewDecoder(r)
	}
	return p
}

// Send sends a message
func (p *Protocol) Send(msg *Message) error {
	if p.encoder == nil {
		return errors.New("protocol has no writer")
	}
	return p.encoder.Encode(msg)
}

// Receive receives a message
func (p *Protocol) Receive() (*Message, error) {
	if p.decoder == nil {
		return nil, errors.New("protocol has no reader")
	}
	var msg Message
	if err := p.decoder.Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendPredict sends an input vector to be evaluated
func (p *Protocol) SendPredict(id int, input tensor.Vector) error {
	return p.Send(&Message{
		Type:    MsgPredict,
		Payload: PredictRequest{ID: id, Input: input},
	})
}

// SendResult sends the output of a request
func (p *Protocol) SendResult(id int, output tensor.Vector) error {
	return p.Send(&Message{
		Type:    MsgResult,
		Payload: PredictResult{ID: id, Output: output, Class: tensor.Argmax(output)},
	})
}

// SendDone signals completion
func (p *Protocol) SendDone() error {
	return p.Send(&Message{Type: MsgDone})
}

// SendError sends an error message for request id
func (p *Protocol) SendError(id int, err error) error {
	payload := ErrorPayload{ID: id, Message: err.Error()}
	var dm *nn.DimensionMismatchError
	if errors.As(err, &dm) {
		payload.Mismatch = true
		payload.Layer, payload.Expected, payload.Actual = dm.Layer, dm.Expected, dm.Actual
	}
	return p.Send(&Message{Type: MsgError, Payload: payload})
}

// ReceivePredict receives a predict request. MsgDone is reported as io.EOF.
func (p *Protocol) ReceivePredict() (*PredictRequest, error) {
	msg, err := p.Receive()
	if err != nil {
		return nil, err
	}
	if msg.Type == MsgDone {
		return nil, io.EOF
	}
	if msg.Type != MsgPredict {
		return nil, fmt.Errorf("%w: expected predict, got %s", ErrUnexpectedMessage, msg.Type)
	}
	payload, ok := msg.Payload.(PredictRequest)
	if !ok {
		return nil, fmt.Errorf("%w: invalid predict payload type %T", ErrUnexpectedMessage, msg.Payload)
	}
	return &payload, nil
}

// ReceiveResult receives a predict result. A MsgError from the peer is
// returned as the error it describes.
func (p *Protocol) ReceiveResult() (*PredictResult, error) {
	msg, err := p.Receive()
	if err != nil {
		return nil, err
	}
	switch msg.Type {
	case MsgError:
		payload, ok := msg.Payload.(ErrorPayload)
		if !ok {
			return nil, fmt.Errorf("remote error: %v", msg.Payload)
		}
		return nil, payload.Err()
	case MsgDone:
		return nil, io.EOF
	case MsgResult:
	default:
		return nil, fmt.Errorf("%w: expected result, got %s", ErrUnexpectedMessage, msg.Type)
	}
	payload, ok := msg.Payload.(PredictResult)
	if !ok {
		return nil, fmt.Errorf("%w: invalid result payload type %T", ErrUnexpectedMessage, msg.Payload)
	}
	return &payload, nil
}
