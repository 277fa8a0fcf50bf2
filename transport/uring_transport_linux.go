//go:build linux

package transport

import (
	"errors"
	"os"
	"syscall"

	"github.com/godzie44/go-uring/uring"
	httperrors "github.com/philippludwig/libsimplehttp/errors"
)

// RingTransport implements Transport using godzie44/go-uring for socket I/O
type RingTransport struct {
	ring *uring.Ring
	fd   int
	file *os.File
}

// NewRingTransport creates a new TCP transport backed by a go-uring ring
func NewRingTransport() (*RingTransport, error) {
	// Create io_uring instance with queue depth of 32
	ring, err := uring.New(32)
	if err != nil {
		return nil, httperrors.NewTransportError(httperrors.InitFailure, err)
	}

	return &RingTransport{
		ring: ring,
		fd:   -1,
	}, nil
}

func newRingTransport() (Transport, error) {
	t, err := NewRingTransport()
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Connect establishes a TCP connection with a blocking connect(2)
func (t *RingTransport) Connect(host string, service string) error {
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

	if err := syscall.Connect(fd, sa); err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(httperrors.SocketConnectFailure, err)
	}

	if err := syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, syscall.TCP_NODELAY, 1); err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(httperrors.InitFailure, err)
	}

	t.fd = fd
	t.file = os.NewFile(uintptr(fd), "socket")
	return nil
}

// complete submits the queued operation and waits for its result.
func (t *RingTransport) complete(op uring.Operation, kind httperrors.TransportError) (int, error) {
	if err := t.ring.QueueSQE(op, 0, 0); err != nil {
		return 0, httperrors.NewTransportError(kind, err)
	}

	if _, err := t.ring.Submit(); err != nil {
		return 0, httperrors.NewTransportError(kind, err)
	}

	cqe, err := t.ring.WaitCQEvents(1)
	if err != nil {
		return 0, httperrors.NewTransportError(kind, err)
	}

	if err := cqe.Error(); err != nil {
		t.ring.SeenCQE(cqe)
		if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
			return 0, httperrors.NewTransportError(httperrors.ConnectionClosed, err)
		}
		return 0, httperrors.NewTransportError(kind, err)
	}

	n := int(cqe.Res)
	t.ring.SeenCQE(cqe)
	return n, nil
}

// Write sends data over the connection using io_uring
func (t *RingTransport) Write(buf []byte) (int, error) {
	if t.fd < 0 {
		return 0, httperrors.NewTransportError(httperrors.SocketWriteFailure, errNotConnected)
	}

	totalWritten := 0
	for totalWritten < len(buf) {
		n, err := t.complete(uring.Write(t.file.Fd(), buf[totalWritten:], 0), httperrors.SocketWriteFailure)
		if err != nil {
			return totalWritten, err
		}

		if n <= 0 {
			return totalWritten, httperrors.NewTransportError(httperrors.ConnectionClosed, nil)
		}

		totalWritten += n
	}

	return totalWritten, nil
}

// Read receives data from the connection using io_uring
func (t *RingTransport) Read(buf []byte) (int, error) {
	if t.fd < 0 {
		return 0, httperrors.NewTransportError(httperrors.SocketReadFailure, errNotConnected)
	}

	n, err := t.complete(uring.Read(t.file.Fd(), buf, 0), httperrors.SocketReadFailure)
	if err != nil {
		return 0, err
	}

	if n == 0 && len(buf) > 0 {
		return 0, httperrors.NewTransportError(httperrors.ConnectionClosed, nil)
	}

	return n, nil
}

// Close closes the socket. The ring stays usable until Destroy.
func (t *RingTransport) Close() error {
	if t.fd < 0 {
		return nil
	}

	var err error
	if t.file != nil {
		err = t.file.Close()
		t.file = nil
	}
	t.fd = -1

	if err != nil {
		return httperrors.NewTransportError(httperrors.SocketCloseFailure, err)
	}
	return nil
}

// Destroy cleans up resources including the io_uring instance
func (t *RingTransport) Destroy() {
	t.Close()
	if t.ring != nil {
		t.ring.Close()
		t.ring = nil
	}
}
