package server

import (
	"errors"
	"net/http"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	loginPath     = "/admin/login"
	forbiddenPath = "/admin/forbidden"
)

type Server struct {
	echo            *echo.Echo
	authHandler     *handler.AuthHandler
	checkoutHandler *handler.CheckoutHandler
	adminHandler    *handler.AdminHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	checkoutHandler *handler.CheckoutHandler,
	adminHandler *handler.AdminHandler,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = navigationPolicy(e)

	s := &Server{
		echo:            e,
		authHandler:     authHandler,
		checkoutHandler: checkoutHandler,
		adminHandler:    adminHandler,
	}

	s.setupRoutes()
	return s
}

// navigationPolicy is the one place that decides where auth failures
// send the browser. The gateway only reports typed errors; mapping
// Unauthenticated/Forbidden to redirects happens here so the transport
// layer stays free of UI concerns.
func navigationPolicy(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch {
		case errors.Is(err, gateway.ErrUnauthenticated):
			_ = c.Redirect(http.StatusFound, loginPath)
		case errors.Is(err, gateway.ErrForbidden):
			_ = c.Redirect(http.StatusFound, forbiddenPath)
		case errors.Is(err, gateway.ErrTimeout):
			_ = c.JSON(http.StatusGatewayTimeout, map[string]string{"error": "commerce api timed out"})
		case errors.Is(err, gateway.ErrNetwork):
			_ = c.JSON(http.StatusBadGateway, map[string]string{"error": "commerce api unreachable"})
		case errors.Is(err, gateway.ErrServer):
			serverErrorJSON(err, c)
		default:
			e.DefaultHTTPErrorHandler(err, c)
		}
	}
}

// serverErrorJSON surfaces the envelope the commerce API attached to a
// 5xx so operators see its message, not just "bad gateway".
func serverErrorJSON(err error, c echo.Context) {
	payload := map[string]any{"error": "commerce api error"}

	var gwErr *gateway.Error
	if errors.As(err, &gwErr) && gwErr.Result != nil && gwErr.Result.JSON != nil {
		payload["detail"] = gwErr.Result.JSON
	}

	_ = c.JSON(http.StatusBadGateway, payload)
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout)
	auth.GET("/me", s.authHandler.Current)

	// -------- checkout (storefront and cashier) --------
	checkout := api.Group("/checkout/carts")
	checkout.POST("", s.checkoutHandler.CreateCart)
	checkout.GET("/:cartID", s.checkoutHandler.GetCart)
	checkout.DELETE("/:cartID", s.checkoutHandler.DiscardCart)
	checkout.POST("/:cartID/items", s.checkoutHandler.AddItem)
	checkout.PUT("/:cartID/items/:variantID", s.checkoutHandler.SetQuantity)
	checkout.DELETE("/:cartID/items/:variantID", s.checkoutHandler.RemoveItem)
	checkout.POST("/:cartID/voucher", s.checkoutHandler.ApplyVoucher)
	checkout.DELETE("/:cartID/voucher", s.checkoutHandler.RemoveVoucher)
	checkout.POST("/:cartID/place", s.checkoutHandler.PlaceOrder)

	// -------- admin back-office proxy --------
	admin := api.Group("/admin")

	admin.GET("/products", s.adminHandler.ListProducts)
	admin.GET("/products/by-name", s.adminHandler.SearchProducts)
	admin.POST("/products", s.adminHandler.InsertProduct)
	admin.PUT("/products/:id", s.adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.adminHandler.DeleteProduct)
	admin.POST("/products/uploads/:id", s.adminHandler.UploadProductImage)
	admin.GET("/variants", s.adminHandler.ListVariants)

	admin.GET("/vouchers", s.adminHandler.ListVouchers)
	admin.POST("/vouchers", s.adminHandler.InsertVoucher)
	admin.GET("/vouchers/details/:id", s.adminHandler.GetVoucher)
	admin.PUT("/vouchers/:id", s.adminHandler.UpdateVoucher)
	admin.DELETE("/vouchers/:id", s.adminHandler.DeleteVoucher)

	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.GET("/orders/:id", s.adminHandler.GetOrder)
	admin.GET("/orders/order-detail/:id", s.adminHandler.GetOrderDetail)
	admin.PUT("/orders/:id/status", s.adminHandler.UpdateOrderStatus)

	admin.GET("/options", s.adminHandler.ListOptions)
	admin.GET("/options/by-name", s.adminHandler.SearchOptions)
	admin.POST("/options", s.adminHandler.RegisterOption)
	admin.GET("/options/details/:id", s.adminHandler.GetOption)
	admin.PUT("/options/:id", s.adminHandler.UpdateOption)
	admin.DELETE("/options/:id", s.adminHandler.DeleteOption)
	admin.GET("/option-values", s.adminHandler.ListOptionValues)
	admin.PUT("/option-values/:id", s.adminHandler.UpdateOptionValue)
	admin.DELETE("/option-values/:id", s.adminHandler.DeleteOptionValue)

	admin.GET("/promotions", s.adminHandler.ListPromotions)
	admin.POST("/promotions", s.adminHandler.InsertPromotion)
	admin.GET("/promotions/details/:id", s.adminHandler.GetPromotion)
	admin.PUT("/promotions/:id", s.adminHandler.UpdatePromotion)
	admin.DELETE("/promotions/:id", s.adminHandler.DeletePromotion)
	admin.POST("/promotion-variants", s.adminHandler.AddPromotionVariant)
	admin.DELETE("/promotion-variants", s.adminHandler.RemovePromotionVariant)

	admin.GET("/commodities", s.adminHandler.ListCommodities)
	admin.GET("/commodities/all", s.adminHandler.ListAllCommodities)
	admin.GET("/commodities/by-name", s.adminHandler.SearchCommodities)
	admin.POST("/commodities", s.adminHandler.RegisterCommodity)
	admin.GET("/commodities/details/:id", s.adminHandler.GetCommodity)
	admin.PUT("/commodities/:id", s.adminHandler.UpdateCommodity)
	admin.DELETE("/commodities/:id", s.adminHandler.DeleteCommodity)

	admin.GET("/suppliers", s.adminHandler.ListSuppliers)
	admin.POST("/suppliers", s.adminHandler.RegisterSupplier)
	admin.GET("/suppliers/details/:id", s.adminHandler.GetSupplier)
	admin.PUT("/suppliers/:id", s.adminHandler.UpdateSupplier)
	admin.DELETE("/suppliers/:id", s.adminHandler.DeleteSupplier)

	admin.GET("/users", s.adminHandler.ListUsers)
	admin.POST("/users/register", s.adminHandler.RegisterUser)
	admin.POST("/users/details", s.adminHandler.UserDetail)
	admin.PUT("/users/change-password", s.adminHandler.ChangePassword)
	admin.PUT("/users/:id", s.adminHandler.UpdateUser)
	admin.GET("/roles", s.adminHandler.ListRoles)
	admin.PUT("/user-roles/:id", s.adminHandler.AssignRoles)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
