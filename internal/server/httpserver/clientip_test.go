package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientIP(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		wantErr bool
	}{
		{"empty", nil, false},
		{"ip and cidr", []string{"127.0.0.1", "10.0.0.0/8", "::1", "fd00::/8"}, false},
		{"blank entries skipped", []string{" ", ""}, false},
		{"bad ip", []string{"proxy.local"}, true},
		{"bad cidr", []string{"10.0.0.0/33"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClientIP(tt.entries)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClientIP() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClientIP_Resolve(t *testing.T) {
	trusted, err := NewClientIP([]string{"10.0.0.0/8", "192.168.1.1"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		clients    *ClientIP
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", nil, "192.168.1.1:1234", nil, "192.168.1.1"},
		{"ipv6", nil, "[::1]:8080", nil, "::1"},
		{"no port", nil, "192.168.1.1", nil, "192.168.1.1"},
		{"unix socket peer", nil, "@", nil, "@"},
		{"untrusted peer ignores xff", trusted, "203.0.113.9:1", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "203.0.113.9"},
		{"no proxies configured", nil, "10.0.0.1:1", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "10.0.0.1"},
		{"trusted peer", trusted, "10.0.0.1:1", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "198.51.100.1"},
		{"rightmost untrusted hop", trusted, "10.0.0.1:1", map[string]string{"X-Forwarded-For": "1.1.1.1, 198.51.100.1, 10.2.3.4"}, "198.51.100.1"},
		{"single trusted ip", trusted, "192.168.1.1:1", map[string]string{"X-Forwarded-For": "198.51.100.2"}, "198.51.100.2"},
		{"real ip fallback", trusted, "10.0.0.1:1", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
		{"garbage header", trusted, "10.0.0.1:1", map[string]string{"X-Forwarded-For": "not-an-ip"}, "10.0.0.1"},
		{"all hops trusted", trusted, "10.0.0.1:1", map[string]string{"X-Forwarded-For": "10.9.9.9"}, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := tt.clients.Resolve(req); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}
