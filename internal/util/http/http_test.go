package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmylchreest/huepick/internal/security"
)

func TestFetch(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept")
			w.Write([]byte("hello"))
		case "/big":
			w.Write([]byte(strings.Repeat("x", 64)))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("late"))
		default:
			http.Error(w, "gone", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	data, err := Fetch(ctx, srv.URL+"/ok", FetchOptions{Headers: map[string]string{"Accept": "image/*"}, AllowPrivateHosts: true})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Fetch() = %q, want hello", data)
	}
	if !strings.HasPrefix(gotUA, UserAgentName+"/") {
		t.Errorf("Expected User-Agent %s/<version>, got %q", UserAgentName, gotUA)
	}
	if gotAccept != "image/*" {
		t.Errorf("Expected custom header to be sent, got %q", gotAccept)
	}

	if _, err := Fetch(ctx, srv.URL+"/missing", FetchOptions{AllowPrivateHosts: true}); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected HTTP 404 error, got %v", err)
	}

	if _, err := Fetch(ctx, srv.URL+"/big", FetchOptions{MaxBytes: 16, AllowPrivateHosts: true}); !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("Expected size limit error, got %v", err)
	}

	if _, err := Fetch(ctx, srv.URL+"/slow", FetchOptions{Timeout: 20 * time.Millisecond, AllowPrivateHosts: true}); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestFetchRefusesPrivateAddresses(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("internal"))
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// localhost is a name, not a literal IP; the check happens after resolution.
	byName := "http://localhost:" + u.Port() + "/x.png"
	for _, target := range []string{srv.URL + "/x.png", byName} {
		if _, err := Fetch(ctx, target, FetchOptions{}); !errors.Is(err, security.ErrPrivateAddress) {
			t.Errorf("Fetch(%s) error = %v, want ErrPrivateAddress", target, err)
		}
	}
	if hits != 0 {
		t.Errorf("Expected no requests to reach the server, got %d", hits)
	}

	if _, err := Fetch(ctx, byName, FetchOptions{AllowPrivateHosts: true}); err != nil {
		t.Errorf("Fetch() with private hosts allowed error = %v", err)
	}
	if hits != 1 {
		t.Errorf("Expected one request, got %d", hits)
	}
}

func TestCheckRedirect(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		allowPrivate bool
		via          int
		wantErr      bool
	}{
		{name: "public", target: "https://cdn.example.com/shoe.jpg"},
		{name: "private ip", target: "http://10.0.0.8/x.png", wantErr: true},
		{name: "localhost", target: "http://localhost/x.png", wantErr: true},
		{name: "metadata", target: "http://169.254.169.254/latest", wantErr: true},
		{name: "scheme change", target: "file:///etc/passwd", wantErr: true},
		{name: "private allowed", target: "http://10.0.0.8/x.png", allowPrivate: true},
		{name: "too many", target: "https://cdn.example.com/shoe.jpg", via: maxRedirects, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tt.target, nil)
			if err != nil {
				t.Fatal(err)
			}
			via := make([]*http.Request, tt.via)
			err = checkRedirect(tt.allowPrivate)(req, via)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkRedirect(%s) error = %v, wantErr %v", tt.target, err, tt.wantErr)
			}
		})
	}
}
