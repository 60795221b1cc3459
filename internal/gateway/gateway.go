package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// TokenSource resolves the credential attached to outgoing requests.
// Clear is invoked when the commerce API answers 401 so a stale token is
// never replayed. The gateway itself takes no navigation decisions; the
// HTTP layer observes the returned error kinds and redirects.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

// FilePart is one file inside a multipart payload.
type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// Multipart describes a form-encoded request body. When present the
// multipart encoder owns the Content-Type header (it carries the
// boundary); the gateway never sets it explicitly.
type Multipart struct {
	Fields map[string]string
	Files  []FilePart
}

// Options configures a single call. The zero value is a GET with the
// gateway's default timeout.
type Options struct {
	Method    string
	Headers   map[string]string
	JSONBody  any
	Multipart *Multipart
	// Params become the query string. Nil values and nil pointers are
	// dropped entirely, never sent as empty.
	Params  map[string]any
	Timeout time.Duration
	// Anonymous skips token resolution. Login and registration are the
	// only callers.
	Anonymous bool
}

// Result is a decoded response body. Exactly one of JSON, Text or Blob is
// populated, chosen by the response Content-Type.
type Result struct {
	Status int
	JSON   json.RawMessage
	Text   string
	Blob   []byte
}

// Decode unmarshals a JSON result into out.
func (r *Result) Decode(out any) error {
	if r.JSON == nil {
		return fmt.Errorf("response is not JSON (status %d)", r.Status)
	}
	if err := json.Unmarshal(r.JSON, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// Gateway decorates every call to the commerce API with the bearer
// credential, a per-call deadline and uniform status handling, so call
// sites never repeat those concerns.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	timeout    time.Duration
}

func New(baseURL string, tokens TokenSource, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		timeout:    timeout,
	}
}

// Request issues one call against the commerce API.
//
// Status handling: 2xx bodies are decoded by Content-Type; 401 clears
// both credential tiers and fails with ErrUnauthenticated; 403 fails with
// ErrForbidden; 5xx fails with ErrServer carrying the decoded body. Any
// other status decodes and returns normally, since the backend reports most
// business errors inside a 200 envelope, so the caller inspects the
// embedded status field. No retry is attempted anywhere.
func (g *Gateway) Request(ctx context.Context, path string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	var token string
	if !opts.Anonymous {
		var ok bool
		token, ok = g.tokens.Token(ctx)
		if !ok {
			// Fail before any network I/O.
			return nil, &Error{Kind: ErrUnauthenticated}
		}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = g.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, contentType, err := encodeBody(opts)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path+buildQueryString(opts.Params), body)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: ErrTimeout, cause: err}
		}
		return nil, &Error{Kind: ErrNetwork, cause: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// A failed Clear must not hide that the call was unauthenticated.
		if err := g.tokens.Clear(ctx); err != nil {
			return nil, &Error{Kind: ErrUnauthenticated, Status: resp.StatusCode, cause: err}
		}
		return nil, &Error{Kind: ErrUnauthenticated, Status: resp.StatusCode}
	case http.StatusForbidden:
		return nil, &Error{Kind: ErrForbidden, Status: resp.StatusCode}
	}

	result, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		// Body stays attached so the caller can surface message/data.
		return nil, &Error{Kind: ErrServer, Status: resp.StatusCode, Result: result}
	}

	return result, nil
}

func encodeBody(opts *Options) (io.Reader, string, error) {
	if opts.Multipart != nil {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for field, value := range opts.Multipart.Fields {
			if err := w.WriteField(field, value); err != nil {
				return nil, "", err
			}
		}
		for _, f := range opts.Multipart.Files {
			part, err := w.CreateFormFile(f.Field, f.Filename)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(f.Content); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	}

	if opts.JSONBody != nil {
		b, err := json.Marshal(opts.JSONBody)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(b), "application/json", nil
	}

	return nil, "application/json", nil
}

func buildQueryString(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	query := url.Values{}
	for key, value := range params {
		s, ok := queryValue(value)
		if !ok {
			continue
		}
		query.Set(key, s)
	}
	if len(query) == 0 {
		return ""
	}
	return "?" + query.Encode()
}

// queryValue renders a scalar param. Nil interfaces and nil pointers are
// dropped so optional filters never appear as empty keys.
func queryValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}

func decodeBody(resp *http.Response) (*Result, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: ErrTimeout, cause: err}
		}
		return nil, &Error{Kind: ErrNetwork, cause: err}
	}

	result := &Result{Status: resp.StatusCode}
	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "application/json"):
		result.JSON = raw
	case strings.Contains(contentType, "text"):
		result.Text = string(raw)
	default:
		result.Blob = raw
	}
	return result, nil
}
