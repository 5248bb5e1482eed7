package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheck(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	if code := check(srv.Client(), srv.URL); code != 0 {
		t.Fatalf("expected healthy, got %d", code)
	}
	status = http.StatusServiceUnavailable
	if code := check(srv.Client(), srv.URL); code != 1 {
		t.Fatalf("expected unhealthy, got %d", code)
	}
	if code := check(srv.Client(), "http://127.0.0.1:1/nowhere"); code != 1 {
		t.Fatalf("expected unreachable to fail")
	}
}
