package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/model"
)

// ErrVoucherRejected marks a lookup the commerce API answered but
// declined: unknown code, expired window, minimum purchase not met. The
// eligibility rules themselves stay server-side.
var ErrVoucherRejected = errors.New("voucher rejected")

type VoucherFilter struct {
	Code      string
	StartDate string
	EndDate   string
	Active    *bool
	Page      int
	Limit     int
}

type VoucherClient interface {
	List(ctx context.Context, filter VoucherFilter) (*model.Envelope, error)
	Insert(ctx context.Context, payload any) (*model.Envelope, error)
	Update(ctx context.Context, id int64, payload any) (*model.Envelope, error)
	Delete(ctx context.Context, id int64) (*model.Envelope, error)
	GetByID(ctx context.Context, id int64) (*model.Envelope, error)
	// GetByCode resolves a voucher for a storefront user.
	GetByCode(ctx context.Context, code string, userID int64) (*model.Voucher, error)
	// GetByCodeForPhone resolves a voucher for a walk-in cashier sale
	// identified by phone number.
	GetByCodeForPhone(ctx context.Context, code, phoneNumber string) (*model.Voucher, error)
}

type voucherClientImpl struct {
	gateway *gateway.Gateway
}

func NewVoucherClient(g *gateway.Gateway) VoucherClient {
	return &voucherClientImpl{
		gateway: g,
	}
}

func (c *voucherClientImpl) List(ctx context.Context, filter VoucherFilter) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/vouchers", &gateway.Options{
		Params: map[string]any{
			"code":      filter.Code,
			"startDate": filter.StartDate,
			"endDate":   filter.EndDate,
			"active":    filter.Active,
			"page":      filter.Page,
			"limit":     filter.Limit,
		},
	})
}

func (c *voucherClientImpl) Insert(ctx context.Context, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/vouchers", &gateway.Options{
		Method:   http.MethodPost,
		JSONBody: payload,
	})
}

func (c *voucherClientImpl) Update(ctx context.Context, id int64, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/vouchers/%d", id), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: payload,
	})
}

func (c *voucherClientImpl) Delete(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/vouchers/%d", id), &gateway.Options{
		Method: http.MethodDelete,
	})
}

func (c *voucherClientImpl) GetByID(ctx context.Context, id int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/vouchers/details/%d", id), nil)
}

func (c *voucherClientImpl) GetByCode(ctx context.Context, code string, userID int64) (*model.Voucher, error) {
	return c.lookup(ctx, "/vouchers/by-code", map[string]any{
		"code":   code,
		"userId": userID,
	})
}

func (c *voucherClientImpl) GetByCodeForPhone(ctx context.Context, code, phoneNumber string) (*model.Voucher, error) {
	return c.lookup(ctx, "/client/voucher/by-code/phone-number", map[string]any{
		"code":        code,
		"phoneNumber": phoneNumber,
	})
}

func (c *voucherClientImpl) lookup(ctx context.Context, path string, params map[string]any) (*model.Voucher, error) {
	env, err := callEnvelope(ctx, c.gateway, path, &gateway.Options{Params: params})
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		return nil, fmt.Errorf("%w: %s", ErrVoucherRejected, env.Message)
	}

	var voucher model.Voucher
	if err := env.DecodeData(&voucher); err != nil {
		return nil, err
	}
	return &voucher, nil
}
