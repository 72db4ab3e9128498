package fetch

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Response is the decoded form of a raw response datagram. Body is the text
// handed to the markup parser; everything else is kept for logging and
// status checks.
type Response struct {
	Proto      string
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       string
}

// ParseResponse splits raw response text into status line, headers, and
// body. Both CRLF and bare-LF line endings are accepted.
func ParseResponse(raw string) (*Response, error) {
	head, body := splitHeadBody(raw)

	lines := strings.Split(head, "\n")
	statusLine := strings.TrimRight(lines[0], "\r")
	parts := strings.SplitN(statusLine, " ", 3)
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "HTTP/") {
		return nil, errors.Errorf("malformed status line %q", statusLine)
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed status code in %q", statusLine)
	}
	status := ""
	if len(parts) == 3 {
		status = parts[2]
	}

	headers := make(map[string]string)
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.Errorf("malformed header line %q", line)
		}
		headers[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	return &Response{
		Proto:      parts[0],
		StatusCode: code,
		Status:     status,
		Headers:    headers,
		Body:       body,
	}, nil
}

func splitHeadBody(raw string) (head, body string) {
	if i := strings.Index(raw, "\r\n\r\n"); i >= 0 {
		return raw[:i], raw[i+4:]
	}
	if i := strings.Index(raw, "\n\n"); i >= 0 {
		return raw[:i], raw[i+2:]
	}
	return raw, ""
}
