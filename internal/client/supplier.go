package client

import (
	"context"
	"fmt"
	"net/http"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/model"
)

type SupplierFilter struct {
	Name        string
	PhoneNumber string
	Email       string
	Active      *bool
	Page        int
	Limit       int
}

type SupplierClient interface {
	List(ctx context.Context, filter SupplierFilter) (*model.Envelope, error)
	Search(ctx context.Context, name string) (*model.Envelope, error)
	Register(ctx context.Context, payload any) (*model.Envelope, error)
	Update(ctx context.Context, id int64, payload any) (*model.Envelope, error)
	Get(ctx context.Context, id int64) (*model.Envelope, error)
	Delete(ctx context.Context, id int64) (*model.Envelope, error)
}

type supplierClientImpl struct {
	gateway *gateway.Gateway
}

func NewSupplierClient(g *gateway.Gateway) SupplierClient {
	return &supplierClientImpl{
		gateway: g,
	}
}

func (c *supplierClientImpl) List(ctx context.Context, filter SupplierFilter) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/suppliers", &gateway.Options{
		Params: map[string]any{
			"name":         filter.Name,
			"phone_number": filter.PhoneNumber,
			"email":        filter.Email,
			"active":       filter.Active,
			"page":         filter.Page,
			"limit":        filter.Limit,
		},
	})
}

func (c *supplierClientImpl) Search(ctx context.Context, name string) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/suppliers/by-name", &gateway.Options{
		Params: map[string]any{"supplier_name": name},
	})
}

func (c *supplierClientImpl) Register(ctx context.Context, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/suppliers", &gateway.Options{
		Method:   http.MethodPost,
		JSONBody: payload,
	})
}

func (c *supplierClientImpl) Update(ctx context.Context, id int64, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/suppliers/%d", id), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: payload,
	})
}

func (c *supplierClientImpl) Get(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/suppliers/details/%d", id), nil)
}

func (c *supplierClientImpl) Delete(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/suppliers/%d", id), &gateway.Options{
		Method: http.MethodDelete,
	})
}
