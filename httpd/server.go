// Package httpd is a single-datagram HTTP responder used to serve fixture
// documents to the fetch client: one request datagram in, one response
// datagram out, no connection state.
package httpd

import (
	"context"
	"fmt"
	"net"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultAddr matches the default port the fetch side assumes.
const DefaultAddr = "127.0.0.1:8888"

// Server answers request datagrams with documents from DocRoot.
type Server struct {
	Addr    string
	DocRoot string
}

// NewServer creates a server for the given listen address and document root.
func NewServer(addr, docRoot string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{Addr: addr, DocRoot: docRoot}
}

// ListenAndServe answers datagrams until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.Addr)
	}

	// The conn is closed exactly once: on cancellation to unblock ReadFrom,
	// or on return. The AfterFunc is stopped on return so its goroutine does
	// not outlive this call.
	var closeOnce sync.Once
	closeConn := func() { closeOnce.Do(func() { conn.Close() }) }
	defer closeConn()
	stop := context.AfterFunc(ctx, closeConn)
	defer stop()

	log := logrus.WithField("addr", conn.LocalAddr().String())
	log.Info("serving documents")

	buf := make([]byte, 2048)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "reading request datagram")
		}

		response, status := respond(s.DocRoot, string(buf[:n]))
		if _, err := conn.WriteTo(response, addr); err != nil {
			log.WithError(err).Warn("writing response datagram")
			continue
		}
		log.WithFields(logrus.Fields{
			"client": addr.String(),
			"status": status,
		}).Info("handled request")
	}
}

// respond maps raw request text to a full response datagram. It never fails;
// protocol problems become 400s and missing documents 404s.
func respond(docRoot, raw string) ([]byte, int) {
	requestPath, err := parseRequestLine(raw)
	if err != nil {
		return buildResponse(400, "Bad Request", err.Error()), 400
	}

	body, err := loadDocument(docRoot, requestPath)
	if err != nil {
		return buildResponse(404, "Not Found", "document not found"), 404
	}
	return buildResponse(200, "OK", body), 200
}

// parseRequestLine extracts the path from "GET <path> HTTP/1.1".
func parseRequestLine(raw string) (string, error) {
	line, _, _ := strings.Cut(raw, "\n")
	line = strings.TrimRight(line, "\r")

	parts := strings.Split(line, " ")
	if len(parts) != 3 || parts[0] != "GET" || !strings.HasPrefix(parts[2], "HTTP/") {
		return "", errors.Errorf("malformed request line %q", line)
	}
	if !strings.HasPrefix(parts[1], "/") {
		return "", errors.Errorf("malformed request path %q", parts[1])
	}
	return parts[1], nil
}

// loadDocument resolves requestPath under the document root. The path is
// lexically rooted first so a "../" sequence cannot escape the root.
func loadDocument(docRoot, requestPath string) (string, error) {
	if strings.HasSuffix(requestPath, "/") {
		requestPath += "index.html"
	}
	rooted := path.Clean("/" + requestPath)
	data, err := os.ReadFile(filepath.Join(docRoot, filepath.FromSlash(rooted)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func buildResponse(code int, status, body string) []byte {
	return []byte(fmt.Sprintf(
		"HTTP/1.1 %d %s\r\nContent-Type: text/html\r\nContent-Length: %d\r\n\r\n%s",
		code, status, len(body), body,
	))
}
