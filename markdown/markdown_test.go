package markdown

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	var got renderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if h := r.Header.Get("Authorization"); h != "Bearer secret" {
			t.Errorf("Authorization = %q", h)
		}
		if h := r.Header.Get("Accept"); h != "application/vnd.github+json" {
			t.Errorf("Accept = %q", h)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte("<h1>Title</h1>\n"))
	}))
	defer srv.Close()

	c := &Client{APIURL: srv.URL, Token: "secret", Mode: "gfm", Context: "bytesized/utilities"}
	out, err := c.Render(context.Background(), "# Title")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "<h1>Title</h1>\n" {
		t.Errorf("Render() = %q", out)
	}
	want := renderRequest{Text: "# Title", Mode: "gfm", Context: "bytesized/utilities"}
	if got != want {
		t.Errorf("request = %+v, want %+v", got, want)
	}
}

func TestRenderWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("Authorization sent without token: %q", h)
		}
		w.Write([]byte("<p>ok</p>"))
	}))
	defer srv.Close()

	c := &Client{APIURL: srv.URL}
	if _, err := c.Render(context.Background(), "ok"); err != nil {
		t.Fatal(err)
	}
}

func TestRenderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`+strings.Repeat(" pad", 100), http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &Client{APIURL: srv.URL, Token: "bad"}
	_, err := c.Render(context.Background(), "text")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Render() error = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusUnauthorized || !strings.Contains(se.Body, "Bad credentials") {
		t.Errorf("StatusError = %+v", se)
	}
	if len(se.Body) > snippetLen+3 {
		t.Errorf("body snippet not truncated: %d bytes", len(se.Body))
	}
}

func TestRenderEmpty(t *testing.T) {
	c := &Client{APIURL: "http://127.0.0.1:0"}
	if _, err := c.Render(context.Background(), " \n"); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Render(empty) error = %v, want ErrEmptyInput", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := map[string]string{
		"README.md":        "README.html",
		"docs/guide.mdown": "docs/guide.html",
		"notes":            "notes.html",
		"page.html":        "page.rendered.html",
		"old/Index.HTM":    "old/Index.rendered.html",
	}
	for in, want := range tests {
		if got := OutputPath(in); got != want {
			t.Errorf("OutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "page.md")
	if err := os.WriteFile(input, []byte("# x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckOutput(input, filepath.Join(dir, "page.html")); err != nil {
		t.Errorf("distinct output: %v", err)
	}
	if err := CheckOutput(input, filepath.Join(dir, ".", "page.md")); !errors.Is(err, ErrOverwriteInput) {
		t.Errorf("same output: got %v, want ErrOverwriteInput", err)
	}
}

func TestStandalone(t *testing.T) {
	doc := string(Standalone("a <b>", []byte("<p>x</p>")))
	for _, want := range []string{"<!DOCTYPE html>", "<title>a &lt;b&gt;</title>", "<p>x</p>\n</article>"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Standalone() missing %q:\n%s", want, doc)
		}
	}
}

func TestPreview(t *testing.T) {
	out, err := Preview("# Heading\n\nSome *text*.", 40)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "text") {
		t.Errorf("Preview() = %q", out)
	}
}

func TestWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() error {
			changed <- struct{}{}
			return nil
		})
	}()

	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("two"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("no change reported")
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
