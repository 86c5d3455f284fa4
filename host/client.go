package host

import (
	"fmt"
	"io"

	"sonic/tensor"
)

// Client issues predict calls to a Server one at a time.
type Client struct {
	protocol *Protocol
	nextID   int
}

// NewClient talks to a server that reads from w and writes to r.
func NewClient(r io.Reader, w io.Writer) *Client {
	return &Client{protocol: NewProtocol(r, w)}
}

// Predict sends input and waits for the answer. A dimension mismatch on the
// server comes back as *nn.DimensionMismatchError.
func (c *Client) Predict(input tensor.Vector) (tensor.Vector, error) {
	id := c.nextID
	c.nextID++
	if err := c.protocol.SendPredict(id, input); err != nil {
		return nil, fmt.Errorf("send request %d: %w", id, err)
	}
	res, err := c.protocol.ReceiveResult()
	if err != nil {
		return nil, err
	}
	if res.ID != id {
		return nil, fmt.Errorf("%w: result for request %d, want %d", ErrUnexpectedMessage, res.ID, id)
	}
	return res.Output, nil
}

// Close tells the server no more requests follow.
func (c *Client) Close() error {
	return c.protocol.SendDone()
}
