package client

import (
	"context"
	"fmt"
	"net/http"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/model"
)

type ProductFilter struct {
	Name          string
	SupplierName  string
	CommodityName string
	Active        *bool
	Page          int
	Limit         int
}

// CatalogClient wraps the product and variant endpoints of the commerce
// API. Write payloads are pass-through: the backend owns their validation
// and answers through the envelope.
type CatalogClient interface {
	ListProducts(ctx context.Context, filter ProductFilter) (*model.Envelope, error)
	SearchProducts(ctx context.Context, name string) (*model.Envelope, error)
	InsertProduct(ctx context.Context, payload any) (*model.Envelope, error)
	UpdateProduct(ctx context.Context, id int64, payload any) (*model.Envelope, error)
	DeleteProduct(ctx context.Context, id int64) (*model.Envelope, error)
	UploadProductImage(ctx context.Context, id int64, filename string, content []byte) (*model.Envelope, error)
	ListVariants(ctx context.Context, productID int64, page, limit int) (*model.Envelope, error)
	GetVariant(ctx context.Context, id int64) (*model.Variant, error)
}

type catalogClientImpl struct {
	gateway *gateway.Gateway
}

func NewCatalogClient(g *gateway.Gateway) CatalogClient {
	return &catalogClientImpl{
		gateway: g,
	}
}

func (c *catalogClientImpl) ListProducts(ctx context.Context, filter ProductFilter) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/products", &gateway.Options{
		Params: map[string]any{
			"name":           filter.Name,
			"supplier_name":  filter.SupplierName,
			"commodity_name": filter.CommodityName,
			"active":         filter.Active,
			"page":           filter.Page,
			"limit":          filter.Limit,
		},
	})
}

func (c *catalogClientImpl) SearchProducts(ctx context.Context, name string) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/products/by-name", &gateway.Options{
		Params: map[string]any{"product_name": name},
	})
}

func (c *catalogClientImpl) InsertProduct(ctx context.Context, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/products", &gateway.Options{
		Method:   http.MethodPost,
		JSONBody: payload,
	})
}

func (c *catalogClientImpl) UpdateProduct(ctx context.Context, id int64, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/products/%d", id), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: payload,
	})
}

func (c *catalogClientImpl) DeleteProduct(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/products/%d", id), &gateway.Options{
		Method: http.MethodDelete,
	})
}

func (c *catalogClientImpl) UploadProductImage(ctx context.Context, id int64, filename string, content []byte) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/products/uploads/%d", id), &gateway.Options{
		Method: http.MethodPost,
		Multipart: &gateway.Multipart{
			Files: []gateway.FilePart{{Field: "file", Filename: filename, Content: content}},
		},
	})
}

func (c *catalogClientImpl) ListVariants(ctx context.Context, productID int64, page, limit int) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/variants", &gateway.Options{
		Params: map[string]any{
			"product_id": productID,
			"page":       page,
			"limit":      limit,
		},
	})
}

func (c *catalogClientImpl) GetVariant(ctx context.Context, id int64) (*model.Variant, error) {
	env, err := callEnvelope(ctx, c.gateway, fmt.Sprintf("/variants/details/%d", id), nil)
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		return nil, fmt.Errorf("variant %d lookup: %s", id, env.Message)
	}

	var variant model.Variant
	if err := env.DecodeData(&variant); err != nil {
		return nil, err
	}
	return &variant, nil
}
