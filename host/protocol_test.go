package host

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"sonic/nn"
	"sonic/tensor"
)

func TestProtocolRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	writer := NewProtocol(nil, &buf)

	err := writer.SendPredict(1, tensor.Vector{0.5, -2})
	if err != nil {
		t.Fatalf("SendPredict failed: %v", err)
	}

	reader := NewProtocol(&buf, nil)
	payload, err := reader.ReceivePredict()
	if err != nil {
		t.Fatalf("ReceivePredict failed: %v", err)
	}

	if payload.ID != 1 {
		t.Errorf("ID = %d, want 1", payload.ID)
	}
	require.Equal(t, []float32{0.5, -2}, payload.Input)
}

func TestProtocolResult(t *testing.T) {
	var buf bytes.Buffer
	writer := NewProtocol(nil, &buf)
	require.NoError(t, writer.SendResult(42, tensor.Vector{0.1, 0.7, 0.2}))

	reader := NewProtocol(&buf, nil)
	res, err := reader.ReceiveResult()
	require.NoError(t, err)
	require.Equal(t, 42, res.ID)
	require.Equal(t, 1, res.Class)
	require.Equal(t, []float32{0.1, 0.7, 0.2}, res.Output)
}

func TestProtocolDimensionMismatchCrossesBoundary(t *testing.T) {
	var buf bytes.Buffer
	writer := NewProtocol(nil, &buf)
	sent := &nn.DimensionMismatchError{Layer: 0, Expected: 3, Actual: 4}
	require.NoError(t, writer.SendError(7, sent))

	reader := NewProtocol(&buf, nil)
	_, err := reader.ReceiveResult()
	require.True(t, errors.Is(err, nn.ErrDimensionMismatch))
	var dm *nn.DimensionMismatchError
	require.True(t, errors.As(err, &dm))
	require.Equal(t, *sent, *dm)
}

func TestProtocolRemoteError(t *testing.T) {
	var buf bytes.Buffer
	writer := NewProtocol(nil, &buf)
	require.NoError(t, writer.SendError(3, errors.New("boom")))

	reader := NewProtocol(&buf, nil)
	_, err := reader.ReceiveResult()
	var re *RemoteError
	require.True(t, errors.As(err, &re))
	require.Equal(t, 3, re.ID)
	require.Equal(t, "boom", re.Message)
}

func TestProtocolDone(t *testing.T) {
	var buf bytes.Buffer
	writer := NewProtocol(nil, &buf)
	require.NoError(t, writer.SendDone())
	require.NoError(t, writer.SendDone())

	reader := NewProtocol(&buf, nil)
	_, err := reader.ReceivePredict()
	require.Equal(t, io.EOF, err)
	_, err = reader.ReceiveResult()
	require.Equal(t, io.EOF, err)
}

func TestProtocolUnexpectedMessage(t *testing.T) {
	var buf bytes.Buffer
	writer := NewProtocol(nil, &buf)
	require.NoError(t, writer.SendResult(1, tensor.Vector{1}))
	require.NoError(t, writer.SendPredict(2, tensor.Vector{1}))

	reader := NewProtocol(&buf, nil)
	_, err := reader.ReceivePredict()
	require.True(t, errors.Is(err, ErrUnexpectedMessage))
	_, err = reader.ReceiveResult()
	require.True(t, errors.Is(err, ErrUnexpectedMessage))
}

func TestProtocolMissingEnds(t *testing.T) {
	require.Error(t, NewProtocol(nil, nil).SendDone())
	_, err := NewProtocol(nil, nil).Receive()
	require.Error(t, err)
}
