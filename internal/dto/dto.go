package dto

type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	RememberMe  bool   `json:"remember_me"`
}

type LoginResult struct {
	UserID int64    `json:"user_id"`
	Roles  []string `json:"roles"`
}

type SessionInfo struct {
	Authenticated bool     `json:"authenticated"`
	UserID        int64    `json:"user_id,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	Expired       bool     `json:"expired,omitempty"`
}

type CreateCartRequest struct {
	Channel     string `json:"channel"` // STOREFRONT | CASHIER
	PhoneNumber string `json:"phone_number"`
}

type AddItemRequest struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ApplyVoucherRequest struct {
	Code string `json:"code"`
}

type CartLineView struct {
	VariantID int64 `json:"variant_id"`
	UnitPrice int64 `json:"unit_price"`
	Quantity  int   `json:"quantity"`
	LineTotal int64 `json:"line_total"`
}

type VoucherView struct {
	Code              string  `json:"code"`
	DiscountType      string  `json:"discount_type"`
	DiscountValue     float64 `json:"discount_value"`
	MaxDiscountAmount int64   `json:"max_discount_amount"`
	MinPurchaseAmount int64   `json:"min_purchase_amount"`
}

type CartView struct {
	ID       string         `json:"id"`
	Channel  string         `json:"channel"`
	Lines    []CartLineView `json:"lines"`
	Voucher  *VoucherView   `json:"voucher,omitempty"`
	Subtotal int64          `json:"subtotal"`
	Discount int64          `json:"discount"`
	Total    int64          `json:"total"`
}

type PlaceOrderRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Address       string `json:"address"`
	Note          string `json:"note"`
	PaymentMethod string `json:"payment_method"`
}

type PlaceOrderResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Total   int64  `json:"total"`
}
