package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDHonorsValidInboundID(t *testing.T) {
	inbound := uuid.NewString()
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", inbound)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != inbound {
		t.Fatalf("context request id = %q, want inbound %q", seen, inbound)
	}
	if got := rr.Header().Get("X-Request-ID"); got != inbound {
		t.Fatalf("response header = %q, want inbound %q", got, inbound)
	}
}

func TestRequestIDReplacesInvalidInboundID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "<script>alert(1)</script>")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("context request id %q is not a uuid: %v", seen, err)
	}
	if got := rr.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("response header = %q, want %q", got, seen)
	}
}
