package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestString(t *testing.T) {
	u, err := ParseURL("http://127.0.0.1:8888/index.html")
	require.NoError(t, err)

	req := NewRequest(MethodGet, u)
	assert.Equal(t, "GET /index.html HTTP/1.1\r\nHost: 127.0.0.1\r\n\r\n", req.String())
}

func TestParseResponse(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<html><head></head><body>hi</body></html>"

	resp, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1", resp.Proto)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, "text/html", resp.Headers["content-type"])
	assert.Equal(t, "<html><head></head><body>hi</body></html>", resp.Body)
}

func TestParseResponseBareLF(t *testing.T) {
	resp, err := ParseResponse("HTTP/1.1 404 Not Found\n\nmissing")
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.Status)
	assert.Equal(t, "missing", resp.Body)
	assert.Empty(t, resp.Headers)
}

func TestParseResponseNoBody(t *testing.T) {
	resp, err := ParseResponse("HTTP/1.1 200 OK")
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, resp.Body)
}

func TestParseResponseMalformed(t *testing.T) {
	for _, raw := range []string{"", "nonsense", "HTTP/1.1 abc OK\r\n\r\n", "HTTP/1.1 200 OK\r\nbadheader\r\n\r\nbody"} {
		_, err := ParseResponse(raw)
		assert.Error(t, err, "raw: %q", raw)
	}
}
