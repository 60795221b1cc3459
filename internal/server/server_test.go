package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"apparel-backoffice/internal/gateway"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policyRecorder(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	navigationPolicy(e)(err, c)
	return rec
}

func TestNavigationPolicy_UnauthenticatedRedirectsToLogin(t *testing.T) {
	rec := policyRecorder(t, &gateway.Error{Kind: gateway.ErrUnauthenticated})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, loginPath, rec.Header().Get("Location"))
}

func TestNavigationPolicy_ForbiddenRedirects(t *testing.T) {
	rec := policyRecorder(t, &gateway.Error{Kind: gateway.ErrForbidden, Status: 403})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, forbiddenPath, rec.Header().Get("Location"))
}

func TestNavigationPolicy_TimeoutAndNetwork(t *testing.T) {
	rec := policyRecorder(t, &gateway.Error{Kind: gateway.ErrTimeout})
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)

	rec = policyRecorder(t, &gateway.Error{Kind: gateway.ErrNetwork})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNavigationPolicy_ServerErrorCarriesDetail(t *testing.T) {
	rec := policyRecorder(t, &gateway.Error{
		Kind:   gateway.ErrServer,
		Status: 500,
		Result: &gateway.Result{Status: 500, JSON: []byte(`{"status":"INTERNAL","message":"boom"}`)},
	})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom")
}

func TestNavigationPolicy_OtherErrorsFallThrough(t *testing.T) {
	rec := policyRecorder(t, echo.NewHTTPError(http.StatusNotFound, "missing"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
