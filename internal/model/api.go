package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the commerce API's uniform response wrapper. Most business
// errors arrive with HTTP 200 and a non-OK status in here; on validation
// failures Data holds a list of error strings.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

const StatusOK = "OK"

func (e *Envelope) OK() bool { return e.Status == StatusOK }

// DecodeData unmarshals the payload half of the envelope into out.
func (e *Envelope) DecodeData(out any) error {
	if e.Data == nil {
		return fmt.Errorf("envelope has no data (status %s)", e.Status)
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}

// Errors returns the error strings the backend puts in Data on
// validation failures. Nil when Data is not a string list.
func (e *Envelope) Errors() []string {
	var msgs []string
	if err := json.Unmarshal(e.Data, &msgs); err != nil {
		return nil
	}
	return msgs
}

// Remote records below are pass-through shapes: the commerce API owns
// their consistency rules, this service only renders and forwards them.

type Voucher struct {
	ID                int64     `json:"id"`
	Code              string    `json:"code"`
	Description       string    `json:"description"`
	Discount          float64   `json:"discount"`
	DiscountType      string    `json:"discountType"` // percentage | fixed
	MinPurchaseAmount int64     `json:"minPurchaseAmount"`
	MaxDiscountAmount int64     `json:"maxDiscountAmount"`
	MaxUsage          int       `json:"maxUsage"`
	TimesUsed         int       `json:"timesUsed"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	Active            bool      `json:"active"`
}

type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	SupplierName  string `json:"supplier_name"`
	CommodityName string `json:"commodity_name"`
	Active        bool   `json:"active"`
}

type Variant struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"product_id"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	Active        bool   `json:"active"`
}

type LoginData struct {
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}
