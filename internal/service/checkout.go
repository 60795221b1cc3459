package service

import (
	"context"
	"fmt"
	"strings"

	"apparel-backoffice/internal/client"
	"apparel-backoffice/internal/dto"
	"apparel-backoffice/internal/model"
	"apparel-backoffice/internal/pricing"
	"apparel-backoffice/internal/repository"
	"apparel-backoffice/internal/session"

	"github.com/google/uuid"
)

const (
	ChannelStorefront = "STOREFRONT"
	ChannelCashier    = "CASHIER"
)

// CheckoutService owns the client-side half of a checkout session: the
// cart lines, the single active voucher and the computed totals. Pricing,
// stock and voucher eligibility stay with the commerce API; the one piece
// of arithmetic done here is the discount clamp in the pricing package.
type CheckoutService interface {
	CreateCart(ctx context.Context, req *dto.CreateCartRequest) (*dto.CartView, error)
	GetCart(ctx context.Context, cartID string) (*dto.CartView, error)
	AddItem(ctx context.Context, cartID string, variantID int64, quantity int) (*dto.CartView, error)
	SetQuantity(ctx context.Context, cartID string, variantID int64, quantity int) (*dto.CartView, error)
	RemoveItem(ctx context.Context, cartID string, variantID int64) (*dto.CartView, error)
	ApplyVoucher(ctx context.Context, cartID, code string) (*dto.CartView, error)
	RemoveVoucher(ctx context.Context, cartID string) (*dto.CartView, error)
	PlaceOrder(ctx context.Context, cartID string, req *dto.PlaceOrderRequest) (*dto.PlaceOrderResult, error)
	DiscardCart(ctx context.Context, cartID string) error
}

type checkoutServiceImpl struct {
	cartRepo repository.CartRepository
	catalog  client.CatalogClient
	vouchers client.VoucherClient
	orders   client.OrderClient
	sessions *session.Store
}

func NewCheckoutService(
	cartRepo repository.CartRepository,
	catalog client.CatalogClient,
	vouchers client.VoucherClient,
	orders client.OrderClient,
	sessions *session.Store,
) CheckoutService {
	return &checkoutServiceImpl{
		cartRepo: cartRepo,
		catalog:  catalog,
		vouchers: vouchers,
		orders:   orders,
		sessions: sessions,
	}
}

func (s *checkoutServiceImpl) CreateCart(ctx context.Context, req *dto.CreateCartRequest) (*dto.CartView, error) {
	channel := req.Channel
	if channel != ChannelCashier {
		channel = ChannelStorefront
	}

	cart := &model.Cart{
		ID:          uuid.NewString(),
		Channel:     channel,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}

	return s.view(cart, nil), nil
}

func (s *checkoutServiceImpl) GetCart(ctx context.Context, cartID string) (*dto.CartView, error) {
	cart, lines, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.view(cart, lines), nil
}

// AddItem puts a variant in the cart, or bumps its quantity when it is
// already there. The unit price is resolved from the catalog at add time.
func (s *checkoutServiceImpl) AddItem(ctx context.Context, cartID string, variantID int64, quantity int) (*dto.CartView, error) {
	cart, _, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	line, err := s.cartRepo.GetLine(ctx, cartID, variantID)
	if err != nil {
		return nil, fmt.Errorf("get cart line: %w", err)
	}

	if line == nil {
		variant, err := s.catalog.GetVariant(ctx, variantID)
		if err != nil {
			return nil, fmt.Errorf("resolve variant price: %w", err)
		}
		line = &model.CartLine{
			CartID:    cartID,
			VariantID: variantID,
			UnitPrice: variant.Price,
			Quantity:  quantity,
		}
	} else {
		line.Quantity += quantity
	}

	if err := s.cartRepo.SaveLine(ctx, line); err != nil {
		return nil, fmt.Errorf("save cart line: %w", err)
	}

	return s.refresh(ctx, cart)
}

func (s *checkoutServiceImpl) SetQuantity(ctx context.Context, cartID string, variantID int64, quantity int) (*dto.CartView, error) {
	cart, _, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	line, err := s.cartRepo.GetLine(ctx, cartID, variantID)
	if err != nil {
		return nil, fmt.Errorf("get cart line: %w", err)
	}
	if line == nil {
		return nil, ErrLineNotFound
	}

	line.Quantity = quantity
	if err := s.cartRepo.SaveLine(ctx, line); err != nil {
		return nil, fmt.Errorf("save cart line: %w", err)
	}

	return s.refresh(ctx, cart)
}

func (s *checkoutServiceImpl) RemoveItem(ctx context.Context, cartID string, variantID int64) (*dto.CartView, error) {
	cart, _, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteLine(ctx, cartID, variantID); err != nil {
		return nil, fmt.Errorf("delete cart line: %w", err)
	}

	return s.refresh(ctx, cart)
}

// ApplyVoucher looks the code up through the commerce API and makes it
// the session's active voucher. At most one voucher is active at a time;
// a code already consumed during the session cannot be applied again.
// Eligibility (validity window, minimum purchase) is the server's call.
func (s *checkoutServiceImpl) ApplyVoucher(ctx context.Context, cartID, code string) (*dto.CartView, error) {
	cart, _, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	for _, used := range splitCodes(cart.UsedCodes) {
		if used == code {
			return nil, ErrVoucherAlreadyUsed
		}
	}

	var voucher *model.Voucher
	if cart.Channel == ChannelCashier && cart.PhoneNumber != "" {
		voucher, err = s.vouchers.GetByCodeForPhone(ctx, code, cart.PhoneNumber)
	} else {
		token, _ := s.sessions.Token(ctx)
		voucher, err = s.vouchers.GetByCode(ctx, code, session.UserID(token))
	}
	if err != nil {
		return nil, err
	}

	// Replacing a voucher frees the old code for reuse.
	used := splitCodes(cart.UsedCodes)
	used = removeCode(used, cart.VoucherCode)
	used = append(used, voucher.Code)

	cart.VoucherCode = voucher.Code
	cart.VoucherType = voucher.DiscountType
	cart.VoucherDiscount = voucher.Discount
	cart.VoucherMaxDiscount = voucher.MaxDiscountAmount
	cart.VoucherMinPurchase = voucher.MinPurchaseAmount
	cart.UsedCodes = strings.Join(used, ",")

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return s.refresh(ctx, cart)
}

func (s *checkoutServiceImpl) RemoveVoucher(ctx context.Context, cartID string) (*dto.CartView, error) {
	cart, _, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.VoucherCode == "" {
		return nil, ErrNoActiveVoucher
	}

	cart.UsedCodes = strings.Join(removeCode(splitCodes(cart.UsedCodes), cart.VoucherCode), ",")
	cart.VoucherCode = ""
	cart.VoucherType = ""
	cart.VoucherDiscount = 0
	cart.VoucherMaxDiscount = 0
	cart.VoucherMinPurchase = 0

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return s.refresh(ctx, cart)
}

// PlaceOrder submits the draft to the commerce API. On acceptance the
// whole checkout session is discarded: cart, lines and voucher.
func (s *checkoutServiceImpl) PlaceOrder(ctx context.Context, cartID string, req *dto.PlaceOrderRequest) (*dto.PlaceOrderResult, error) {
	cart, lines, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := pricing.ComputeTotal(toLineItems(lines), cartVoucher(cart))

	var codes []string
	if cart.VoucherCode != "" {
		codes = []string{cart.VoucherCode}
	}

	items := make([]client.OrderDraftItem, len(lines))
	for i, line := range lines {
		items[i] = client.OrderDraftItem{VariantID: line.VariantID, Quantity: line.Quantity}
	}

	token, _ := s.sessions.Token(ctx)
	draft := &client.OrderDraft{
		UserID:        session.UserID(token),
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		Note:          req.Note,
		TotalMoney:    total,
		PaymentMethod: req.PaymentMethod,
		Codes:         codes,
		CartItems:     items,
		Status:        "pending",
	}

	env, err := s.orders.Place(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	if !env.OK() {
		if msgs := env.Errors(); len(msgs) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrOrderRejected, strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("%w: %s", ErrOrderRejected, env.Message)
	}

	if err := s.cartRepo.Delete(ctx, cartID); err != nil {
		return nil, fmt.Errorf("discard cart after order: %w", err)
	}

	return &dto.PlaceOrderResult{
		Status:  env.Status,
		Message: env.Message,
		Total:   total,
	}, nil
}

func (s *checkoutServiceImpl) DiscardCart(ctx context.Context, cartID string) error {
	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return ErrCartNotFound
	}
	return s.cartRepo.Delete(ctx, cartID)
}

func (s *checkoutServiceImpl) load(ctx context.Context, cartID string) (*model.Cart, []*model.CartLine, error) {
	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, nil, fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return nil, nil, ErrCartNotFound
	}

	lines, err := s.cartRepo.GetLines(ctx, cartID)
	if err != nil {
		return nil, nil, fmt.Errorf("get cart lines: %w", err)
	}
	return cart, lines, nil
}

func (s *checkoutServiceImpl) refresh(ctx context.Context, cart *model.Cart) (*dto.CartView, error) {
	lines, err := s.cartRepo.GetLines(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("get cart lines: %w", err)
	}
	return s.view(cart, lines), nil
}

func (s *checkoutServiceImpl) view(cart *model.Cart, lines []*model.CartLine) *dto.CartView {
	items := toLineItems(lines)
	voucher := cartVoucher(cart)

	view := &dto.CartView{
		ID:       cart.ID,
		Channel:  cart.Channel,
		Lines:    make([]dto.CartLineView, len(lines)),
		Subtotal: pricing.Subtotal(items),
		Discount: pricing.Discount(items, voucher),
		Total:    pricing.ComputeTotal(items, voucher),
	}
	for i, line := range lines {
		view.Lines[i] = dto.CartLineView{
			VariantID: line.VariantID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.UnitPrice * int64(line.Quantity),
		}
	}
	if voucher != nil {
		view.Voucher = &dto.VoucherView{
			Code:              voucher.Code,
			DiscountType:      string(voucher.DiscountType),
			DiscountValue:     voucher.DiscountValue,
			MaxDiscountAmount: voucher.MaxDiscountAmount,
			MinPurchaseAmount: voucher.MinPurchaseAmount,
		}
	}
	return view
}

func toLineItems(lines []*model.CartLine) []pricing.LineItem {
	items := make([]pricing.LineItem, len(lines))
	for i, line := range lines {
		items[i] = pricing.LineItem{UnitPrice: line.UnitPrice, Quantity: line.Quantity}
	}
	return items
}

func cartVoucher(cart *model.Cart) *pricing.Voucher {
	if cart.VoucherCode == "" {
		return nil
	}
	return &pricing.Voucher{
		Code:              cart.VoucherCode,
		DiscountType:      pricing.DiscountType(cart.VoucherType),
		DiscountValue:     cart.VoucherDiscount,
		MaxDiscountAmount: cart.VoucherMaxDiscount,
		MinPurchaseAmount: cart.VoucherMinPurchase,
	}
}

func splitCodes(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

func removeCode(codes []string, code string) []string {
	if code == "" {
		return codes
	}
	out := codes[:0]
	for _, c := range codes {
		if c != code {
			out = append(out, c)
		}
	}
	return out
}
