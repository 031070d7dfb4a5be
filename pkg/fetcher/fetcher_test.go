package fetcher

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetHtmlBytes(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Hello</title></head></html>`))
	}))
	defer srv.Close()

	f := NewFetcher(Options{UserAgent: "smp-test/1.0", Timeout: 5 * time.Second})
	body, err := f.GetHtmlBytes(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetHtmlBytes() error = %v", err)
	}
	if string(body) != `<html><head><title>Hello</title></head></html>` {
		t.Errorf("body = %q", body)
	}
	if gotUA != "smp-test/1.0" {
		t.Errorf("User-Agent = %q, want smp-test/1.0", gotUA)
	}
}

func TestGetHtml(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Hello</title></head></html>`))
	}))
	defer srv.Close()

	doc, err := NewFetcher(Options{}).GetHtml(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetHtml() error = %v", err)
	}
	if got := doc.Find("title").Text(); got != "Hello" {
		t.Errorf("title = %q, want Hello", got)
	}
}

func TestGetHtmlBytes_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewFetcher(Options{}).GetHtmlBytes(context.Background(), srv.URL)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("GetHtmlBytes() error = %v, want ErrStatus", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("GetHtmlBytes() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestNewFetcher_Logger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := NewFetcher(Options{Logger: logger}).GetHtmlBytes(context.Background(), srv.URL); err != nil {
		t.Fatalf("GetHtmlBytes() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"msg":"request finished"`) || !strings.Contains(buf.String(), `"status":200`) {
		t.Errorf("debug log missing, got %q", buf.String())
	}
}

func TestGetHtmlBytes_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFetcher(Options{}).GetHtmlBytes(ctx, srv.URL); err == nil {
		t.Fatal("GetHtmlBytes() expected error for canceled context")
	}
}
