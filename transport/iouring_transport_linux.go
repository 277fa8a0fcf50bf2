//go:build linux

package transport

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/iceber/iouring-go"
	httperrors "github.com/philippludwig/libsimplehttp/errors"
)

var (
	errNotConnected = errors.New("not connected")
	errSubmit       = errors.New("io_uring submit failed")
)

// URingTransport implements Transport using io_uring for socket I/O
type URingTransport struct {
	iour *iouring.IOURing
	fd   int
}

// NewURingTransport creates a new TCP transport with io_uring
func NewURingTransport() (*URingTransport, error) {
	// Create io_uring instance with queue depth of 32
	iour, err := iouring.New(32)
	if err != nil {
		return nil, httperrors.NewTransportError(httperrors.InitFailure, err)
	}

	return &URingTransport{
		iour: iour,
		fd:   -1,
	}, nil
}

func newURingTransport() (Transport, error) {
	t, err := NewURingTransport()
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Connect establishes a TCP connection using io_uring
func (t *URingTransport) Connect(host string, service string) error {
	if t.fd >= 0 {
		return httperrors.NewTransportError(httperrors.SocketConnectFailure, errors.New("already connected"))
	}

	sa, family, err := resolveSockaddr(host, service)
	if err != nil {
		return err
	}

	fd, err := syscall.Socket(family, syscall.SOCK_STREAM, 0)
	if err != nil {
		return httperrors.NewTransportError(httperrors.SocketCreateFailure, err)
	}

	// Set socket to non-blocking mode for io_uring
	if err := syscall.SetNonblock(fd, true); err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(httperrors.SocketCreateFailure, err)
	}

	if err := syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, syscall.TCP_NODELAY, 1); err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(httperrors.InitFailure, err)
	}

	prepReq, err := iouring.Connect(fd, sa)
	if err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(httperrors.SocketConnectFailure, err)
	}

	if _, err := t.submit(prepReq); err != nil {
		syscall.Close(fd)
		if errors.Is(err, errSubmit) {
			return httperrors.NewTransportError(httperrors.InitFailure, err)
		}
		return httperrors.NewTransportError(httperrors.SocketConnectFailure, err)
	}

	t.fd = fd
	return nil
}

// submit queues one request and waits for it. The raw completion result is
// returned; a negative result is the errno of the failed operation.
func (t *URingTransport) submit(prepReq iouring.PrepRequest) (int, error) {
	ch := make(chan iouring.Result, 1)
	req, err := t.iour.SubmitRequest(prepReq, ch)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errSubmit, err)
	}
	<-ch

	res, err := req.GetRes()
	if err != nil {
		return 0, err
	}
	if res < 0 {
		return 0, syscall.Errno(-res)
	}
	return res, nil
}

// Write sends data over the connection using io_uring
func (t *URingTransport) Write(buf []byte) (int, error) {
	if t.fd < 0 {
		return 0, httperrors.NewTransportError(httperrors.SocketWriteFailure, errNotConnected)
	}

	totalWritten := 0
	for totalWritten < len(buf) {
		n, err := t.submit(iouring.Send(t.fd, buf[totalWritten:], 0))
		if err != nil {
			if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
				return totalWritten, httperrors.NewTransportError(httperrors.ConnectionClosed, err)
			}
			return totalWritten, httperrors.NewTransportError(httperrors.SocketWriteFailure, err)
		}

		if n <= 0 {
			return totalWritten, httperrors.NewTransportError(httperrors.ConnectionClosed, nil)
		}

		totalWritten += n
	}

	return totalWritten, nil
}

// Read receives data from the connection using io_uring
func (t *URingTransport) Read(buf []byte) (int, error) {
	if t.fd < 0 {
		return 0, httperrors.NewTransportError(httperrors.SocketReadFailure, errNotConnected)
	}

	n, err := t.submit(iouring.Recv(t.fd, buf, 0))
	if err != nil {
		if errors.Is(err, syscall.ECONNRESET) {
			return 0, httperrors.NewTransportError(httperrors.ConnectionClosed, err)
		}
		return 0, httperrors.NewTransportError(httperrors.SocketReadFailure, err)
	}

	if n == 0 && len(buf) > 0 {
		return 0, httperrors.NewTransportError(httperrors.ConnectionClosed, nil)
	}

	return n, nil
}

// Close closes the socket. The ring stays usable until Destroy.
func (t *URingTransport) Close() error {
	if t.fd < 0 {
		return nil // Already closed or never connected
	}

	fd := t.fd
	t.fd = -1
	if err := syscall.Close(fd); err != nil {
		return httperrors.NewTransportError(httperrors.SocketCloseFailure, err)
	}

	return nil
}

// Destroy cleans up resources including the io_uring instance
func (t *URingTransport) Destroy() {
	t.Close()
	if t.iour != nil {
		t.iour.Close()
		t.iour = nil
	}
}
