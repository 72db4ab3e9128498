package fetch

import "strings"

// Method is an HTTP request method.
type Method string

const MethodGet Method = "GET"

// Request is an HTTP-style request assembled into a single text datagram.
type Request struct {
	Method Method
	URL    *URL
}

// NewRequest builds a request for the given URL.
func NewRequest(method Method, u *URL) *Request {
	return &Request{Method: method, URL: u}
}

// String assembles the request text: request line, Host header, blank line.
func (r *Request) String() string {
	var b strings.Builder
	b.WriteString(string(r.Method))
	b.WriteString(" ")
	b.WriteString(r.URL.Path)
	b.WriteString(" HTTP/1.1\r\n")
	b.WriteString("Host: ")
	b.WriteString(r.URL.Host)
	b.WriteString("\r\n\r\n")
	return b.String()
}
