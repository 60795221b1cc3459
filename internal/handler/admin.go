package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"apparel-backoffice/internal/client"
	"apparel-backoffice/internal/model"
	"apparel-backoffice/internal/pagination"

	"github.com/labstack/echo/v4"
)

// pageWindowWidth is how many page buttons the admin list screens show.
const pageWindowWidth = 5

// AdminHandler proxies the back-office CRUD screens to the commerce API.
// Bodies pass through both ways; the only work done here is query-filter
// binding and the page-window computation the screens used to repeat.
type AdminHandler struct {
	catalog     client.CatalogClient
	vouchers    client.VoucherClient
	orders      client.OrderClient
	suppliers   client.SupplierClient
	accounts    client.AccountClient
	options     client.OptionClient
	promotions  client.PromotionClient
	commodities client.CommodityClient
}

func NewAdminHandler(
	catalog client.CatalogClient,
	vouchers client.VoucherClient,
	orders client.OrderClient,
	suppliers client.SupplierClient,
	accounts client.AccountClient,
	options client.OptionClient,
	promotions client.PromotionClient,
	commodities client.CommodityClient,
) *AdminHandler {
	return &AdminHandler{
		catalog:     catalog,
		vouchers:    vouchers,
		orders:      orders,
		suppliers:   suppliers,
		accounts:    accounts,
		options:     options,
		promotions:  promotions,
		commodities: commodities,
	}
}

// listResponse pairs the backend envelope with the computed page window.
type listResponse struct {
	Result *model.Envelope    `json:"result"`
	Window *pagination.Window `json:"window,omitempty"`
}

func idFromPath(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func intQuery(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}

func boolQuery(c echo.Context, name string) *bool {
	v, err := strconv.ParseBool(c.QueryParam(name))
	if err != nil {
		return nil
	}
	return &v
}

// bindBody reads the request body as raw JSON for pass-through writes.
func bindBody(c echo.Context) (json.RawMessage, error) {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil || len(raw) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if !json.Valid(raw) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	return raw, nil
}

// listJSON renders a list envelope, attaching the page window when the
// backend reports a total count.
func listJSON(c echo.Context, env *model.Envelope, page, limit int) error {
	resp := listResponse{Result: env}

	var counted struct {
		Total int `json:"total"`
	}
	if env.Data != nil && json.Unmarshal(env.Data, &counted) == nil && counted.Total > 0 {
		w := pagination.New(page, limit, counted.Total, pageWindowWidth)
		resp.Window = &w
	}

	return c.JSON(http.StatusOK, resp)
}

// -------- products --------

func (h *AdminHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)

	env, err := h.catalog.ListProducts(ctx, client.ProductFilter{
		Name:          c.QueryParam("name"),
		SupplierName:  c.QueryParam("supplier_name"),
		CommodityName: c.QueryParam("commodity_name"),
		Active:        boolQuery(c, "active"),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

func (h *AdminHandler) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()

	env, err := h.catalog.SearchProducts(ctx, c.QueryParam("product_name"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) InsertProduct(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.catalog.InsertProduct(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.catalog.UpdateProduct(ctx, id, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.catalog.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UploadProductImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}

	env, err := h.catalog.UploadProductImage(ctx, id, fileHeader.Filename, content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) ListVariants(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)

	productID, _ := strconv.ParseInt(c.QueryParam("product_id"), 10, 64)
	env, err := h.catalog.ListVariants(ctx, productID, page, limit)
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

// -------- vouchers --------

func (h *AdminHandler) ListVouchers(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)

	env, err := h.vouchers.List(ctx, client.VoucherFilter{
		Code:      c.QueryParam("code"),
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
		Active:    boolQuery(c, "active"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

func (h *AdminHandler) InsertVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.vouchers.Insert(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UpdateVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.vouchers.Update(ctx, id, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) GetVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.vouchers.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) DeleteVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.vouchers.Delete(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

// -------- orders --------

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)

	env, err := h.orders.List(ctx, client.OrderFilter{
		FullName:    c.QueryParam("fullName"),
		PhoneNumber: c.QueryParam("phoneNumber"),
		Email:       c.QueryParam("email"),
		OrderDate:   c.QueryParam("orderDate"),
		Status:      c.QueryParam("status"),
		Active:      boolQuery(c, "active"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

func (h *AdminHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.orders.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) GetOrderDetail(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.orders.GetDetail(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	env, err := h.orders.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

// -------- suppliers --------

func (h *AdminHandler) ListSuppliers(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)

	env, err := h.suppliers.List(ctx, client.SupplierFilter{
		Name:        c.QueryParam("name"),
		PhoneNumber: c.QueryParam("phone_number"),
		Email:       c.QueryParam("email"),
		Active:      boolQuery(c, "active"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

func (h *AdminHandler) RegisterSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.suppliers.Register(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UpdateSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.suppliers.Update(ctx, id, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) GetSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.suppliers.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) DeleteSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.suppliers.Delete(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

// -------- options / option values --------

func optionFilter(c echo.Context) (client.OptionFilter, int, int) {
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)
	return client.OptionFilter{
		Name:   c.QueryParam("name"),
		Active: boolQuery(c, "active"),
		Page:   page,
		Limit:  limit,
	}, page, limit
}

func (h *AdminHandler) ListOptions(c echo.Context) error {
	ctx := c.Request().Context()

	filter, page, limit := optionFilter(c)
	env, err := h.options.List(ctx, filter)
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

func (h *AdminHandler) SearchOptions(c echo.Context) error {
	ctx := c.Request().Context()

	env, err := h.options.Search(ctx, c.QueryParam("option_name"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) RegisterOption(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.options.Register(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UpdateOption(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.options.Update(ctx, id, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) GetOption(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.options.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) DeleteOption(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.options.Delete(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) ListOptionValues(c echo.Context) error {
	ctx := c.Request().Context()

	optionID, _ := strconv.ParseInt(c.QueryParam("option_id"), 10, 64)
	filter, page, limit := optionFilter(c)
	env, err := h.options.ListValues(ctx, optionID, filter)
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

func (h *AdminHandler) UpdateOptionValue(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.options.UpdateValue(ctx, id, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) DeleteOptionValue(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.options.DeleteValue(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

// -------- promotions --------

func (h *AdminHandler) ListPromotions(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)

	env, err := h.promotions.List(ctx, client.PromotionFilter{
		Name:   c.QueryParam("name"),
		Active: boolQuery(c, "active"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

func (h *AdminHandler) InsertPromotion(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.promotions.Insert(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UpdatePromotion(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.promotions.Update(ctx, id, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) GetPromotion(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.promotions.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) DeletePromotion(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.promotions.Delete(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) AddPromotionVariant(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.promotions.AddVariant(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) RemovePromotionVariant(c echo.Context) error {
	ctx := c.Request().Context()

	variantID, err := strconv.ParseInt(c.QueryParam("variant_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid variant_id")
	}
	promotionID, err := strconv.ParseInt(c.QueryParam("promotion_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid promotion_id")
	}

	env, err := h.promotions.RemoveVariant(ctx, variantID, promotionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

// -------- commodities --------

func (h *AdminHandler) ListCommodities(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)

	env, err := h.commodities.List(ctx, client.CommodityFilter{
		Name:   c.QueryParam("name"),
		Active: boolQuery(c, "active"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

func (h *AdminHandler) ListAllCommodities(c echo.Context) error {
	ctx := c.Request().Context()

	env, err := h.commodities.ListAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) SearchCommodities(c echo.Context) error {
	ctx := c.Request().Context()

	env, err := h.commodities.Search(ctx, c.QueryParam("commodity_name"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) RegisterCommodity(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.commodities.Register(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UpdateCommodity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.commodities.Update(ctx, id, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) GetCommodity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.commodities.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) DeleteCommodity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	env, err := h.commodities.Delete(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

// -------- users / roles --------

func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := intQuery(c, "page", 1), intQuery(c, "limit", 10)

	roleID, _ := strconv.ParseInt(c.QueryParam("role_id"), 10, 64)
	env, err := h.accounts.ListUsers(ctx, client.UserFilter{
		Name:        c.QueryParam("name"),
		PhoneNumber: c.QueryParam("phone_number"),
		Email:       c.QueryParam("email"),
		RoleID:      roleID,
		Active:      boolQuery(c, "active"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	return listJSON(c, env, page, limit)
}

func (h *AdminHandler) RegisterUser(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.accounts.Register(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UserDetail(c echo.Context) error {
	ctx := c.Request().Context()

	env, err := h.accounts.UserDetail(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.accounts.UpdateUser(ctx, id, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := bindBody(c)
	if err != nil {
		return err
	}

	env, err := h.accounts.ChangePassword(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) ListRoles(c echo.Context) error {
	ctx := c.Request().Context()

	env, err := h.accounts.ListRoles(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}

func (h *AdminHandler) AssignRoles(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	var req struct {
		RoleIDs []int64 `json:"role_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	env, err := h.accounts.AssignRoles(ctx, id, req.RoleIDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, env)
}
