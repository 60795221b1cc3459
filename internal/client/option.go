package client

import (
	"context"
	"fmt"
	"net/http"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/model"
)

type OptionFilter struct {
	Name   string
	Active *bool
	Page   int
	Limit  int
}

// OptionClient wraps the product option endpoints and their values. An
// option (size, color) owns a list of option values; values are edited
// and deleted individually, never created outside their option.
type OptionClient interface {
	List(ctx context.Context, filter OptionFilter) (*model.Envelope, error)
	Search(ctx context.Context, name string) (*model.Envelope, error)
	Register(ctx context.Context, payload any) (*model.Envelope, error)
	Update(ctx context.Context, id int64, payload any) (*model.Envelope, error)
	Get(ctx context.Context, id int64) (*model.Envelope, error)
	Delete(ctx context.Context, id int64) (*model.Envelope, error)
	ListValues(ctx context.Context, optionID int64, filter OptionFilter) (*model.Envelope, error)
	UpdateValue(ctx context.Context, id int64, payload any) (*model.Envelope, error)
	DeleteValue(ctx context.Context, id int64) (*model.Envelope, error)
}

type optionClientImpl struct {
	gateway *gateway.Gateway
}

func NewOptionClient(g *gateway.Gateway) OptionClient {
	return &optionClientImpl{
		gateway: g,
	}
}

func (c *optionClientImpl) List(ctx context.Context, filter OptionFilter) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/options", &gateway.Options{
		Params: map[string]any{
			"name":   filter.Name,
			"active": filter.Active,
			"page":   filter.Page,
			"limit":  filter.Limit,
		},
	})
}

func (c *optionClientImpl) Search(ctx context.Context, name string) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/options/by-name", &gateway.Options{
		Params: map[string]any{"option_name": name},
	})
}

func (c *optionClientImpl) Register(ctx context.Context, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/options", &gateway.Options{
		Method:   http.MethodPost,
		JSONBody: payload,
	})
}

func (c *optionClientImpl) Update(ctx context.Context, id int64, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/options/%d", id), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: payload,
	})
}

func (c *optionClientImpl) Get(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/options/details/%d", id), nil)
}

func (c *optionClientImpl) Delete(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/options/%d", id), &gateway.Options{
		Method: http.MethodDelete,
	})
}

func (c *optionClientImpl) ListValues(ctx context.Context, optionID int64, filter OptionFilter) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/option-values", &gateway.Options{
		Params: map[string]any{
			"option_id": optionID,
			"name":      filter.Name,
			"active":    filter.Active,
			"page":      filter.Page,
			"limit":     filter.Limit,
		},
	})
}

func (c *optionClientImpl) UpdateValue(ctx context.Context, id int64, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/option-values/%d", id), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: payload,
	})
}

func (c *optionClientImpl) DeleteValue(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/option-values/%d", id), &gateway.Options{
		Method: http.MethodDelete,
	})
}
