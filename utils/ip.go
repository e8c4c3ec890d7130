package utils

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP prefers the first hop of X-Forwarded-For over the socket peer.
func RealClientIP(r *http.Request) string {
	if xfwd := r.Header.Get("X-Forwarded-For"); xfwd != "" {
		first, _, _ := strings.Cut(xfwd, ",")
		return strings.TrimSpace(first)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
