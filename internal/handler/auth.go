package handler

import (
	"net/http"

	"apparel-backoffice/internal/dto"
	"apparel-backoffice/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.PhoneNumber == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone_number and password are required")
	}

	result, err := h.authService.Login(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.authService.Logout(ctx); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Current(c echo.Context) error {
	ctx := c.Request().Context()

	info, err := h.authService.Current(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, info)
}
