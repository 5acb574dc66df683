package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ParseHostNoPort returns the host part (no port) from strings like "ip:port", "[v6]:port", or "ip".
func ParseHostNoPort(s string) string {
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return strings.Trim(s, "[]")
}

// FirstForwardedFor returns the left-most entry of X-Forwarded-For, trimmed.
func FirstForwardedFor(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// ClientIP resolves the client IP used for rate limiting, CIDR checks and logs.
// With trustProxy it prefers CF-Connecting-IP, then the first X-Forwarded-For
// entry, then X-Real-IP; otherwise only RemoteAddr is used.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		candidates := []string{
			r.Header.Get("CF-Connecting-IP"),
			FirstForwardedFor(r.Header.Get("X-Forwarded-For")),
			r.Header.Get("X-Real-IP"),
		}
		for _, v := range candidates {
			if ip := ParseHostNoPort(strings.TrimSpace(v)); ip != "" {
				return ip
			}
		}
	}
	return ParseHostNoPort(r.RemoteAddr)
}

// IPMatcher matches single addresses and CIDR prefixes. IPv4-mapped IPv6
// addresses match their IPv4 form.
type IPMatcher struct {
	prefixes []netip.Prefix
}

// NewIPMatcher parses list entries as prefixes or single addresses.
// Unparsable entries are ignored; Invalid returns them.
func NewIPMatcher(list []string) *IPMatcher {
	m := &IPMatcher{}
	for _, raw := range list {
		if p, ok := parsePrefix(raw); ok {
			m.prefixes = append(m.prefixes, p)
		}
	}
	return m
}

// Invalid returns the entries of list NewIPMatcher would ignore.
func Invalid(list []string) []string {
	var bad []string
	for _, raw := range list {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if _, ok := parsePrefix(raw); !ok {
			bad = append(bad, raw)
		}
	}
	return bad
}

func parsePrefix(raw string) (netip.Prefix, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return netip.Prefix{}, false
	}
	if p, err := netip.ParsePrefix(s); err == nil {
		return p.Masked(), true
	}
	if a, err := netip.ParseAddr(s); err == nil {
		a = a.Unmap()
		return netip.PrefixFrom(a, a.BitLen()), true
	}
	return netip.Prefix{}, false
}

func (m *IPMatcher) IsEmpty() bool {
	return len(m.prefixes) == 0
}

func (m *IPMatcher) Allow(ipStr string) bool {
	addr, err := netip.ParseAddr(ipStr)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range m.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
