package utils

import (
	"net/http/httptest"
	"testing"
)

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.10 ", "2001:db8::/32", "garbage", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.168.1.10", true},
		{"192.168.1.11", false},
		{"::ffff:10.0.0.1", true},
		{"2001:db8::1", true},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if NewIPMatcher(nil).IsEmpty() != true {
		t.Error("empty list should give an empty matcher")
	}
	if bad := Invalid([]string{"10.0.0.0/8", "garbage"}); len(bad) != 1 || bad[0] != "garbage" {
		t.Errorf("Invalid() = %v", bad)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "127.0.0.1:5555"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := ClientIP(r, false); got != "127.0.0.1" {
		t.Errorf("ClientIP(untrusted) = %q, want 127.0.0.1", got)
	}
	if got := ClientIP(r, true); got != "203.0.113.7" {
		t.Errorf("ClientIP(trusted) = %q, want 203.0.113.7", got)
	}

	r.Header.Set("CF-Connecting-IP", "198.51.100.2")
	if got := ClientIP(r, true); got != "198.51.100.2" {
		t.Errorf("ClientIP(cloudflare) = %q, want 198.51.100.2", got)
	}

	r6 := httptest.NewRequest("GET", "/", nil)
	r6.RemoteAddr = "[::1]:8080"
	if got := ClientIP(r6, false); got != "::1" {
		t.Errorf("ClientIP(v6) = %q, want ::1", got)
	}
}
