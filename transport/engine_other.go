//go:build !linux

package transport

import (
	"errors"

	httperrors "github.com/philippludwig/libsimplehttp/errors"
)

var errNoURing = errors.New("io_uring is only available on linux")

func newURingTransport() (Transport, error) {
	return nil, httperrors.NewTransportError(httperrors.InitFailure, errNoURing)
}

func newRingTransport() (Transport, error) {
	return nil, httperrors.NewTransportError(httperrors.InitFailure, errNoURing)
}
