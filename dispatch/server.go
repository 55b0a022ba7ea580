package dispatch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Request is one line of the stdio protocol: an operation name and its
// JSON-encoded arguments.
type Request struct {
	Op      string          `json:"op"`
	Request json.RawMessage `json:"request,omitempty"`
}

// Response is the reply to one Request. Exactly one of Result and Error is
// populated. Encode results are raw image bytes and marshal into the
// envelope as base64; every other result is a JSON object.
type Response struct {
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Server speaks the line-oriented protocol: one JSON request per input
// line, one JSON response per output line.
type Server struct {
	d   *Dispatcher
	log *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer creates a Server over the given dispatcher.
func NewServer(d *Dispatcher, opts ...Option) *Server {
	s := &Server{
		d:   d,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads requests from in until EOF and writes one response per request
// to out. Empty lines and lines that do not parse as a request envelope
// are skipped.
func (s *Server) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Increase buffer size for requests carrying whole images as base64.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("failed to parse request line", zap.Error(err))
			continue
		}

		if err := encoder.Encode(s.handle(&req)); err != nil {
			s.log.Error("failed to encode response", zap.Error(err))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handle executes one request and shapes the response envelope.
func (s *Server) handle(req *Request) *Response {
	out, err := s.d.Dispatch(req.Op, req.Request)
	if err != nil {
		s.log.Debug("operation failed",
			zap.String("op", req.Op),
			zap.Error(err))
		return &Response{Error: err.Error()}
	}
	if req.Op == "encode" {
		return &Response{Result: out}
	}
	return &Response{Result: json.RawMessage(out)}
}
