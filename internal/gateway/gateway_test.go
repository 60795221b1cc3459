package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	token   string
	cleared atomic.Bool
}

func (f *fakeTokens) Token(ctx context.Context) (string, bool) {
	return f.token, f.token != ""
}

func (f *fakeTokens) Clear(ctx context.Context) error {
	f.cleared.Store(true)
	f.token = ""
	return nil
}

func TestRequest_NoTokenFailsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	g := New(srv.URL, &fakeTokens{}, 0)

	_, err := g.Request(context.Background(), "/products", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRequest_TimeoutAbortsInFlightCall(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	g := New(srv.URL, &fakeTokens{token: "t"}, time.Hour)

	start := time.Now()
	_, err := g.Request(context.Background(), "/slow", &Options{Timeout: 50 * time.Millisecond})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRequest_401ClearsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "stale"}
	g := New(srv.URL, tokens, 0)

	_, err := g.Request(context.Background(), "/orders", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.True(t, tokens.cleared.Load())
}

type failingClearTokens struct {
	token string
}

func (f *failingClearTokens) Token(ctx context.Context) (string, bool) { return f.token, true }
func (f *failingClearTokens) Clear(ctx context.Context) error {
	return errDurableStore
}

var errDurableStore = errors.New("durable store unavailable")

func TestRequest_401StillUnauthenticatedWhenClearFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := New(srv.URL, &failingClearTokens{token: "stale"}, 0)

	_, err := g.Request(context.Background(), "/orders", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, err, errDurableStore)
}

func TestRequest_403Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "t"}
	g := New(srv.URL, tokens, 0)

	_, err := g.Request(context.Background(), "/admin-only", nil)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, tokens.cleared.Load())
}

func TestRequest_ParamsDropNilValues(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := New(srv.URL, &fakeTokens{token: "t"}, 0)

	var active *bool
	_, err := g.Request(context.Background(), "/products", &Options{
		Params: map[string]any{
			"a":      1,
			"b":      nil,
			"active": active,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "a=1", gotQuery)
}

func TestRequest_BearerAndJSONContentType(t *testing.T) {
	var auth, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, &fakeTokens{token: "secret"}, 0)

	_, err := g.Request(context.Background(), "/suppliers", &Options{
		Method:   http.MethodPost,
		JSONBody: map[string]string{"name": "Lan Anh Textiles"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "application/json", contentType)
}

func TestRequest_MultipartLeavesBoundaryToEncoder(t *testing.T) {
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, &fakeTokens{token: "t"}, 0)

	_, err := g.Request(context.Background(), "/products/uploads/7", &Options{
		Method: http.MethodPost,
		Multipart: &Multipart{
			Files: []FilePart{{Field: "file", Filename: "front.jpg", Content: []byte{0xff, 0xd8}}},
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="))
}

func TestRequest_ServerErrorKeepsDecodedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"INTERNAL","message":"boom","data":null}`))
	}))
	defer srv.Close()

	g := New(srv.URL, &fakeTokens{token: "t"}, 0)

	_, err := g.Request(context.Background(), "/orders", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServer)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	require.NotNil(t, gwErr.Result)
	assert.Contains(t, string(gwErr.Result.JSON), "boom")
}

func TestRequest_OtherStatusesReturnBodyToCaller(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"NOT_FOUND","message":"no such voucher","data":null}`))
	}))
	defer srv.Close()

	g := New(srv.URL, &fakeTokens{token: "t"}, 0)

	res, err := g.Request(context.Background(), "/vouchers/by-code", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Contains(t, string(res.JSON), "no such voucher")
}

func TestRequest_DecodesByContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/text":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write([]byte("pong"))
		case "/blob":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte{0xff, 0xd8, 0xff})
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"OK"}`))
		}
	}))
	defer srv.Close()

	g := New(srv.URL, &fakeTokens{token: "t"}, 0)

	res, err := g.Request(context.Background(), "/text", nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", res.Text)
	assert.Nil(t, res.JSON)

	res, err = g.Request(context.Background(), "/blob", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, res.Blob)

	res, err = g.Request(context.Background(), "/json", nil)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, res.Decode(&body))
	assert.Equal(t, "OK", body["status"])
}

func TestRequest_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	g := New(srv.URL, &fakeTokens{token: "t"}, 0)

	_, err := g.Request(context.Background(), "/anything", nil)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestRequest_AnonymousSkipsToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, &fakeTokens{}, 0)

	_, err := g.Request(context.Background(), "/users/admin/login", &Options{
		Method:    http.MethodPost,
		Anonymous: true,
		JSONBody:  map[string]string{"phone_number": "0901", "password": "x"},
	})
	require.NoError(t, err)
	assert.Empty(t, auth)
}
