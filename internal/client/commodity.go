package client

import (
	"context"
	"fmt"
	"net/http"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/model"
)

type CommodityFilter struct {
	Name   string
	Active *bool
	Page   int
	Limit  int
}

// CommodityClient wraps the commodity (product category) endpoints.
type CommodityClient interface {
	List(ctx context.Context, filter CommodityFilter) (*model.Envelope, error)
	// ListAll returns every active commodity without paging, for pickers.
	ListAll(ctx context.Context) (*model.Envelope, error)
	Search(ctx context.Context, name string) (*model.Envelope, error)
	Register(ctx context.Context, payload any) (*model.Envelope, error)
	Update(ctx context.Context, id int64, payload any) (*model.Envelope, error)
	Get(ctx context.Context, id int64) (*model.Envelope, error)
	Delete(ctx context.Context, id int64) (*model.Envelope, error)
}

type commodityClientImpl struct {
	gateway *gateway.Gateway
}

func NewCommodityClient(g *gateway.Gateway) CommodityClient {
	return &commodityClientImpl{
		gateway: g,
	}
}

func (c *commodityClientImpl) List(ctx context.Context, filter CommodityFilter) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/commodities", &gateway.Options{
		Params: map[string]any{
			"name":   filter.Name,
			"active": filter.Active,
			"page":   filter.Page,
			"limit":  filter.Limit,
		},
	})
}

func (c *commodityClientImpl) ListAll(ctx context.Context) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/client-commodity", nil)
}

func (c *commodityClientImpl) Search(ctx context.Context, name string) (*model.Envelope, error) {
	// Param spelling matches the backend route.
	return callEnvelope(ctx, c.gateway, "/commodities/by-name", &gateway.Options{
		Params: map[string]any{"commotity_name": name},
	})
}

func (c *commodityClientImpl) Register(ctx context.Context, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/commodities", &gateway.Options{
		Method:   http.MethodPost,
		JSONBody: payload,
	})
}

func (c *commodityClientImpl) Update(ctx context.Context, id int64, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/commodities/%d", id), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: payload,
	})
}

func (c *commodityClientImpl) Get(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/commodities/details/%d", id), nil)
}

func (c *commodityClientImpl) Delete(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/commodities/%d", id), &gateway.Options{
		Method: http.MethodDelete,
	})
}
