package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID_HonorsInboundHeader(t *testing.T) {
	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/health/", nil)
	req.Header.Set(RequestIDHeader, "batch-7f3a")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "batch-7f3a" {
		t.Errorf("Response %s = %q, want inbound ID echoed", RequestIDHeader, got)
	}
	if ctxID != "batch-7f3a" {
		t.Errorf("GetRequestID() = %q, want inbound ID", ctxID)
	}
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/health/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	id := w.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("Expected a generated request ID on the response")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Generated ID %q is not a UUID: %v", id, err)
	}
	if ctxID != id {
		t.Errorf("Context ID %q does not match response header %q", ctxID, id)
	}
}

func TestGetRequestID_BareContext(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
