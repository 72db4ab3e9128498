package fetch

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultPort is used when the host carries no explicit port.
	DefaultPort uint16 = 8888
	// DefaultPath is requested when the URL names no document.
	DefaultPath = "/index.html"

	supportedScheme = "http"
)

// URL is the path/host/port triple handed to the transport. Only plain http
// is supported.
type URL struct {
	Scheme string
	Host   string
	Port   uint16
	Path   string
}

// ParseURL splits a raw URL into its parts, filling in the package default
// port and document path. The "http://" prefix is optional.
func ParseURL(raw string) (*URL, error) {
	return ParseURLWithDefaults(raw, DefaultPort, DefaultPath)
}

// ParseURLWithDefaults is ParseURL with caller-supplied fallbacks for the
// port and the document path, for when those come from configuration.
func ParseURLWithDefaults(raw string, defaultPort uint16, defaultPath string) (*URL, error) {
	rest := strings.TrimPrefix(raw, supportedScheme+"://")
	if rest == "" {
		return nil, errors.Errorf("empty url %q", raw)
	}
	if i := strings.Index(rest, "://"); i >= 0 {
		return nil, errors.Errorf("unsupported scheme %q in url %q", rest[:i], raw)
	}

	hostport := rest
	path := defaultPath
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		hostport = rest[:i]
		if i+1 < len(rest) {
			path = rest[i:]
		}
	}
	if hostport == "" {
		return nil, errors.Errorf("missing host in url %q", raw)
	}

	host := hostport
	port := defaultPort
	if i := strings.IndexByte(hostport, ':'); i >= 0 {
		host = hostport[:i]
		p, err := strconv.ParseUint(hostport[i+1:], 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid port in url %q", raw)
		}
		port = uint16(p)
	}
	if host == "" {
		return nil, errors.Errorf("missing host in url %q", raw)
	}

	return &URL{
		Scheme: supportedScheme,
		Host:   host,
		Port:   port,
		Path:   path,
	}, nil
}

// Address returns the host:port form used to dial the transport.
func (u *URL) Address() string {
	return u.Host + ":" + strconv.Itoa(int(u.Port))
}

func (u *URL) String() string {
	return u.Scheme + "://" + u.Address() + u.Path
}
