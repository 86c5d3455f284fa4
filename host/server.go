package host

import (
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"sonic/nn"
	"sonic/tensor"
	"sonic/utils"
)

// Server answers predict requests from one Protocol stream with a shared,
// read-only Network.
type Server struct {
	Network  *nn.Network
	Protocol *Protocol
	Logger   zerolog.Logger

	// Stats, when set, accumulates predict timings.
	Stats *utils.TimingStats
}

// Serve handles requests until the peer sends MsgDone or closes the stream.
// Failed predictions and out-of-turn messages are reported to the peer and
// serving continues; transport errors end the loop.
func (s *Server) Serve() error {
	for {
		req, err := s.Protocol.ReceivePredict()
		if err == io.EOF {
			s.Logger.Debug().Msg("peer done")
			return nil
		}
		if errors.Is(err, ErrUnexpectedMessage) {
			s.Logger.Warn().Err(err).Msg("rejecting message")
			if err := s.Protocol.SendError(-1, err); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		out, err := s.predict(req.Input)
		if err != nil {
			s.Logger.Warn().Int("id", req.ID).Err(err).Msg("predict failed")
			if err := s.Protocol.SendError(req.ID, err); err != nil {
				return err
			}
			continue
		}
		s.Logger.Debug().Int("id", req.ID).Int("class", tensor.Argmax(out)).Msg("predict ok")
		if err := s.Protocol.SendResult(req.ID, out); err != nil {
			return err
		}
	}
}

func (s *Server) predict(input tensor.Vector) (tensor.Vector, error) {
	start := time.Now()
	out, err := s.Network.Predict(input)
	if s.Stats != nil {
		s.Stats.Observe(time.Since(start), err)
	}
	return out, err
}
