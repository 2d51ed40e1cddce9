package judge0

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/domain"
	"gitlab.com/code-round.net/internal/static/errs"
)

func TestExecuteSendsBase64Submission(t *testing.T) {
	var got submissionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submissions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("base64_encoded") != "true" || r.URL.Query().Get("wait") != "true" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-Auth-Token") != "secret" {
			t.Errorf("missing auth token")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":{"id":3,"description":"Accepted"},"stdout":"VGVzdCBDYXNlIDE6IDEK","time":"0.012","memory":1024}`))
	}))
	defer srv.Close()

	c := NewClient(&config.JudgeConfig{Url: srv.URL + "/", Timeout: time.Second, AuthToken: "secret"})
	resp, err := c.Execute(context.Background(), "print(1)", 71)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src, _ := base64.StdEncoding.DecodeString(got.SourceCode)
	if string(src) != "print(1)" || got.LanguageID != 71 || got.Stdin != "" {
		t.Fatalf("unexpected submission %+v", got)
	}
	if resp.Status.ID != domain.JudgeStatusAccepted || resp.Stdout == nil || *resp.Stdout != "VGVzdCBDYXNlIDE6IDEK" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Time == nil || *resp.Time != "0.012" {
		t.Fatalf("unexpected time %v", resp.Time)
	}
}

func TestExecuteNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue is full", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(&config.JudgeConfig{Url: srv.URL, Timeout: time.Second}).Execute(context.Background(), "x", 63)

	var de *errs.DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("expected DispatchError, got %v", err)
	}
	if !errors.Is(err, errs.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
	if !strings.Contains(de.Cause, "503") || !strings.Contains(de.Cause, "queue is full") {
		t.Fatalf("unexpected cause %q", de.Cause)
	}
}

func TestExecuteUnreachableJudge(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(&config.JudgeConfig{Url: url, Timeout: time.Second}).Execute(context.Background(), "x", 63)
	if !errors.Is(err, errs.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
}

func TestExecuteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient(&config.JudgeConfig{Url: srv.URL, Timeout: 20 * time.Millisecond}).Execute(context.Background(), "x", 63)
	if !errors.Is(err, errs.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
}

func TestExecuteMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := NewClient(&config.JudgeConfig{Url: srv.URL, Timeout: time.Second}).Execute(context.Background(), "x", 63)
	if !errors.Is(err, errs.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
}
