package protocol

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	httperrors "github.com/philippludwig/libsimplehttp/errors"
	"github.com/philippludwig/libsimplehttp/transport"
)

const readChunkSize = 4096

// Http1Protocol performs one request/response exchange over a transport.
// The peer is asked to close the connection and the response is read until it does.
type Http1Protocol struct {
	transport transport.Transport
	buffer    []byte
	logger    *zap.Logger
}

// NewHttp1Protocol creates a new HTTP/1.x protocol handler
func NewHttp1Protocol(t transport.Transport, logger *zap.Logger) *Http1Protocol {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Http1Protocol{
		transport: t,
		buffer:    make([]byte, 0, 1024),
		logger:    logger,
	}
}

// Connect establishes a connection to the specified host and service
func (p *Http1Protocol) Connect(host string, service string) error {
	return p.transport.Connect(host, service)
}

// Disconnect closes the connection and releases the transport
func (p *Http1Protocol) Disconnect() error {
	return transport.Release(p.transport)
}

// buildRequest formats an HTTP request into the internal buffer
func (p *Http1Protocol) buildRequest(req *HttpRequest) {
	p.buffer = appendRequest(p.buffer[:0], req)
}

// readFullResponse reads until the peer closes the stream. Read errors end
// the response like a close does; the bytes received so far are kept.
func (p *Http1Protocol) readFullResponse() {
	p.buffer = p.buffer[:0]

	readBuf := make([]byte, readChunkSize)
	for {
		n, err := p.transport.Read(readBuf)
		p.buffer = append(p.buffer, readBuf[:n]...)
		if err != nil {
			var httpErr *httperrors.Error
			if !errors.As(err, &httpErr) || !httpErr.IsTransport(httperrors.ConnectionClosed) {
				p.logger.Debug("read ended with error", zap.Error(err), zap.Int("bytes", len(p.buffer)))
			}
			return
		}
	}
}

// validateRequest rejects requests the wire format cannot express.
func validateRequest(req *HttpRequest) error {
	switch req.Method {
	case MethodGet:
		if len(req.Body) > 0 {
			return httperrors.NewHttpError(httperrors.InvalidRequest, errGetWithBody)
		}
	case MethodPost:
	default:
		return httperrors.NewHttpError(httperrors.InvalidRequest, fmt.Errorf("unknown method %d", req.Method))
	}
	return nil
}

var errGetWithBody = errors.New("GET request must not have a body")

// PerformRequest writes req, reads the whole response and splits it.
func (p *Http1Protocol) PerformRequest(req *HttpRequest) (*HttpResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	p.buildRequest(req)

	n, err := p.transport.Write(p.buffer)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("request sent", zap.Stringer("method", req.Method), zap.Int("bytes", n))

	p.readFullResponse()
	p.logger.Debug("response received", zap.Int("bytes", len(p.buffer)))

	header, body := SplitResponse(p.buffer)
	return &HttpResponse{
		Header: header,
		Body:   body,
	}, nil
}
