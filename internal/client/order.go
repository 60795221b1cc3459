package client

import (
	"context"
	"fmt"
	"net/http"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/model"
)

// OrderDraft is the payload the commerce API expects when an order is
// placed. Field names follow the backend contract.
type OrderDraft struct {
	UserID        int64            `json:"userId"`
	FullName      string           `json:"fullName"`
	Email         string           `json:"email"`
	PhoneNumber   string           `json:"phoneNumber"`
	Address       string           `json:"address"`
	Note          string           `json:"note"`
	TotalMoney    int64            `json:"totalMoney"`
	PaymentMethod string           `json:"paymentMethod"`
	Codes         []string         `json:"codes"`
	CartItems     []OrderDraftItem `json:"cart_items"`
	Status        string           `json:"status"`
}

type OrderDraftItem struct {
	VariantID int64 `json:"variantId"`
	Quantity  int   `json:"quantity"`
}

type OrderFilter struct {
	FullName    string
	PhoneNumber string
	Email       string
	OrderDate   string
	Status      string
	Active      *bool
	Page        int
	Limit       int
}

type OrderClient interface {
	Place(ctx context.Context, draft *OrderDraft) (*model.Envelope, error)
	Get(ctx context.Context, id int64) (*model.Envelope, error)
	GetDetail(ctx context.Context, id int64) (*model.Envelope, error)
	List(ctx context.Context, filter OrderFilter) (*model.Envelope, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Envelope, error)
}

type orderClientImpl struct {
	gateway *gateway.Gateway
}

func NewOrderClient(g *gateway.Gateway) OrderClient {
	return &orderClientImpl{
		gateway: g,
	}
}

func (c *orderClientImpl) Place(ctx context.Context, draft *OrderDraft) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/orders", &gateway.Options{
		Method:   http.MethodPost,
		JSONBody: draft,
	})
}

func (c *orderClientImpl) Get(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/orders/%d", id), nil)
}

func (c *orderClientImpl) GetDetail(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/orders/order-detail/%d", id), nil)
}

func (c *orderClientImpl) List(ctx context.Context, filter OrderFilter) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/orders", &gateway.Options{
		Params: map[string]any{
			"fullName":    filter.FullName,
			"phoneNumber": filter.PhoneNumber,
			"email":       filter.Email,
			"orderDate":   filter.OrderDate,
			"status":      filter.Status,
			"active":      filter.Active,
			"page":        filter.Page,
			"limit":       filter.Limit,
		},
	})
}

func (c *orderClientImpl) UpdateStatus(ctx context.Context, id int64, status string) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/orders/%d/status", id), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: map[string]string{"status": status},
	})
}
