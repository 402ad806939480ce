package counterservice

import (
	"encoding/hex"
	"net"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// SessionResolver derives a stable pseudo-identity for an anonymous
// visitor from request origin data. Good enough to deduplicate likes, not
// an authentication mechanism.
type SessionResolver struct {
	key []byte
}

// NewSessionResolver keys the hash with a deployment secret so identities
// cannot be precomputed off-site. The secret must be at most 64 bytes.
func NewSessionResolver(secret string) (*SessionResolver, error) {
	key := []byte(secret)

	// reject secrets blake2b cannot key with
	if _, err := blake2b.New(16, key); err != nil {
		return nil, err
	}

	return &SessionResolver{key: key}, nil
}

// Resolve maps the same (ip, user agent) tuple to the same identity every
// time. Pure function of its inputs.
func (r *SessionResolver) Resolve(remoteAddr, forwardedFor, realIP, userAgent string) string {
	ip := clientIP(remoteAddr, forwardedFor, realIP)

	h, _ := blake2b.New(16, r.key)
	h.Write([]byte(ip + "-" + userAgent))

	return "session_" + hex.EncodeToString(h.Sum(nil))
}

func clientIP(remoteAddr, forwardedFor, realIP string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
		return host
	}
	if remoteAddr != "" {
		return remoteAddr
	}

	return "unknown"
}
