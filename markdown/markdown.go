// Package markdown renders markdown to HTML through the GitHub markdown API
// and previews it locally in the terminal.
package markdown

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
)

// DefaultAPIURL is the GitHub markdown endpoint.
const DefaultAPIURL = "https://api.github.com/markdown"

const snippetLen = 200

var (
	ErrEmptyInput     = errors.New("no markdown to render")
	ErrOverwriteInput = errors.New("output would overwrite the input file")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string // leading part of the response body
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "markdown api: " + e.Status
	}
	return fmt.Sprintf("markdown api: %s: %s", e.Status, e.Body)
}

// Client renders markdown through the API.
type Client struct {
	APIURL  string
	Token   string
	Mode    string // "gfm" or "markdown"
	Context string // repository for gfm references, e.g. "owner/repo"
	HTTP    *http.Client
}

type renderRequest struct {
	Text    string `json:"text"`
	Mode    string `json:"mode,omitempty"`
	Context string `json:"context,omitempty"`
}

// Render posts text to the API and returns the HTML it responds with.
func (c *Client) Render(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	body, err := json.Marshal(renderRequest{Text: text, Mode: c.Mode, Context: c.Context})
	if err != nil {
		return nil, err
	}

	url := c.APIURL
	if url == "" {
		url = DefaultAPIURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("markdown api: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("markdown api: reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(data))
		if len(snippet) > snippetLen {
			snippet = snippet[:snippetLen] + "..."
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: snippet}
	}
	return data, nil
}

// OutputPath is the default destination for input: the same path with an
// .html extension, or .rendered.html when input already is HTML.
func OutputPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	switch strings.ToLower(filepath.Ext(input)) {
	case ".html", ".htm":
		return base + ".rendered.html"
	}
	return base + ".html"
}

// CheckOutput refuses an output path that names the input file.
func CheckOutput(input, output string) error {
	in, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	if in == out {
		return fmt.Errorf("%w: %s", ErrOverwriteInput, output)
	}
	if a, err := os.Stat(in); err == nil {
		if b, err := os.Stat(out); err == nil && os.SameFile(a, b) {
			return fmt.Errorf("%w: %s", ErrOverwriteInput, output)
		}
	}
	return nil
}

// Standalone wraps a rendered fragment in a minimal HTML document.
func Standalone(title string, fragment []byte) []byte {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n<article class=\"markdown-body\">\n")
	b.Write(fragment)
	if len(fragment) > 0 && fragment[len(fragment)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString("</article>\n</body>\n</html>\n")
	return b.Bytes()
}

// Preview renders text for the terminal, wrapped at width columns.
func Preview(text string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
