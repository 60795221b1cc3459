package client

import (
	"context"
	"fmt"
	"net/http"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/model"
)

type PromotionFilter struct {
	Name   string
	Active *bool
	Page   int
	Limit  int
}

// PromotionClient wraps the promotion endpoints. Promotions attach to
// individual variants through the promotion-variants link resource.
type PromotionClient interface {
	List(ctx context.Context, filter PromotionFilter) (*model.Envelope, error)
	Insert(ctx context.Context, payload any) (*model.Envelope, error)
	Update(ctx context.Context, id int64, payload any) (*model.Envelope, error)
	Get(ctx context.Context, id int64) (*model.Envelope, error)
	Delete(ctx context.Context, id int64) (*model.Envelope, error)
	AddVariant(ctx context.Context, payload any) (*model.Envelope, error)
	RemoveVariant(ctx context.Context, variantID, promotionID int64) (*model.Envelope, error)
}

type promotionClientImpl struct {
	gateway *gateway.Gateway
}

func NewPromotionClient(g *gateway.Gateway) PromotionClient {
	return &promotionClientImpl{
		gateway: g,
	}
}

func (c *promotionClientImpl) List(ctx context.Context, filter PromotionFilter) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/promotions", &gateway.Options{
		Params: map[string]any{
			"name":   filter.Name,
			"active": filter.Active,
			"page":   filter.Page,
			"limit":  filter.Limit,
		},
	})
}

func (c *promotionClientImpl) Insert(ctx context.Context, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/promotions", &gateway.Options{
		Method:   http.MethodPost,
		JSONBody: payload,
	})
}

func (c *promotionClientImpl) Update(ctx context.Context, id int64, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/promotions/%d", id), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: payload,
	})
}

func (c *promotionClientImpl) Get(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/promotions/details/%d", id), nil)
}

func (c *promotionClientImpl) Delete(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/promotions/%d", id), &gateway.Options{
		Method: http.MethodDelete,
	})
}

func (c *promotionClientImpl) AddVariant(ctx context.Context, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/promotion-variants", &gateway.Options{
		Method:   http.MethodPost,
		JSONBody: payload,
	})
}

func (c *promotionClientImpl) RemoveVariant(ctx context.Context, variantID, promotionID int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/promotion-variants", &gateway.Options{
		Method: http.MethodDelete,
		Params: map[string]any{
			"variant_id":   variantID,
			"promotion_id": promotionID,
		},
	})
}
