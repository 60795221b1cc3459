package handler

import (
	"errors"
	"net/http"
	"strconv"

	"apparel-backoffice/internal/client"
	"apparel-backoffice/internal/dto"
	"apparel-backoffice/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func variantIDFromPath(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("variantID"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid variant id")
	}
	return id, nil
}

func (h *CheckoutHandler) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	view, err := h.checkoutService.CreateCart(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, view)
}

func (h *CheckoutHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.checkoutService.GetCart(ctx, c.Param("cartID"))
	if err != nil {
		return mapCheckoutError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
	}

	view, err := h.checkoutService.AddItem(ctx, c.Param("cartID"), req.VariantID, req.Quantity)
	if err != nil {
		return mapCheckoutError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	variantID, err := variantIDFromPath(c)
	if err != nil {
		return err
	}

	var req dto.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
	}

	view, err := h.checkoutService.SetQuantity(ctx, c.Param("cartID"), variantID, req.Quantity)
	if err != nil {
		return mapCheckoutError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	variantID, err := variantIDFromPath(c)
	if err != nil {
		return err
	}

	view, err := h.checkoutService.RemoveItem(ctx, c.Param("cartID"), variantID)
	if err != nil {
		return mapCheckoutError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) ApplyVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ApplyVoucherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "voucher code is required")
	}

	view, err := h.checkoutService.ApplyVoucher(ctx, c.Param("cartID"), req.Code)
	if err != nil {
		return mapCheckoutError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) RemoveVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.checkoutService.RemoveVoucher(ctx, c.Param("cartID"))
	if err != nil {
		return mapCheckoutError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.PlaceOrder(ctx, c.Param("cartID"), &req)
	if err != nil {
		return mapCheckoutError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) DiscardCart(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.checkoutService.DiscardCart(ctx, c.Param("cartID")); err != nil {
		return mapCheckoutError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// mapCheckoutError turns service failures into HTTP statuses. Gateway
// errors pass through untouched for the central error handler.
func mapCheckoutError(err error) error {
	switch {
	case errors.Is(err, service.ErrCartNotFound), errors.Is(err, service.ErrLineNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrVoucherAlreadyUsed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoActiveVoucher),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, client.ErrVoucherRejected),
		errors.Is(err, service.ErrOrderRejected):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return err
}
