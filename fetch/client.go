package fetch

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds the whole request/response exchange when the
	// caller's context carries no deadline of its own.
	DefaultTimeout = 5 * time.Second
	// DefaultBufferSize is how much of the single response datagram is read.
	DefaultBufferSize = 64 * 1024
)

// Client exchanges one request datagram for one response datagram. There is
// no connection state, retransmission, or streaming.
type Client struct {
	Timeout    time.Duration
	BufferSize int
}

// NewClient returns a client with the default timeout and read buffer.
func NewClient() *Client {
	return &Client{
		Timeout:    DefaultTimeout,
		BufferSize: DefaultBufferSize,
	}
}

// Fetch sends a GET for u and decodes the response. The context deadline, or
// the client timeout when the context has none, bounds both the send and the
// receive.
func (c *Client) Fetch(ctx context.Context, u *URL) (*Response, error) {
	log := logrus.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"host":       u.Host,
		"port":       u.Port,
		"path":       u.Path,
	})

	conn, err := net.Dial("udp", u.Address())
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", u.Address())
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.Timeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, errors.Wrap(err, "setting exchange deadline")
	}

	request := NewRequest(MethodGet, u).String()
	log.WithField("bytes", len(request)).Debug("sending request")
	if _, err := conn.Write([]byte(request)); err != nil {
		return nil, errors.Wrapf(err, "sending request to %s", u.Address())
	}

	buf := make([]byte, c.BufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "receiving response from %s", u.Address())
	}

	resp, err := ParseResponse(string(buf[:n]))
	if err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}
	log.WithFields(logrus.Fields{
		"status": resp.StatusCode,
		"bytes":  n,
	}).Info("received response")
	return resp, nil
}
