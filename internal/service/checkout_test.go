package service

import (
	"context"
	"fmt"
	"testing"

	"apparel-backoffice/internal/client"
	"apparel-backoffice/internal/dto"
	"apparel-backoffice/internal/model"
	"apparel-backoffice/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory cart repository so service tests stay free of SQLite.
type fakeCartRepo struct {
	carts map[string]*model.Cart
	lines map[string][]*model.CartLine
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: map[string]*model.Cart{},
		lines: map[string][]*model.CartLine{},
	}
}

func (f *fakeCartRepo) Create(ctx context.Context, cart *model.Cart) error {
	copied := *cart
	f.carts[cart.ID] = &copied
	return nil
}

func (f *fakeCartRepo) Get(ctx context.Context, id string) (*model.Cart, error) {
	cart, ok := f.carts[id]
	if !ok {
		return nil, nil
	}
	copied := *cart
	return &copied, nil
}

func (f *fakeCartRepo) Save(ctx context.Context, cart *model.Cart) error {
	copied := *cart
	f.carts[cart.ID] = &copied
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, id string) error {
	delete(f.carts, id)
	delete(f.lines, id)
	return nil
}

func (f *fakeCartRepo) GetLines(ctx context.Context, cartID string) ([]*model.CartLine, error) {
	return f.lines[cartID], nil
}

func (f *fakeCartRepo) GetLine(ctx context.Context, cartID string, variantID int64) (*model.CartLine, error) {
	for _, line := range f.lines[cartID] {
		if line.VariantID == variantID {
			copied := *line
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) SaveLine(ctx context.Context, line *model.CartLine) error {
	for i, existing := range f.lines[line.CartID] {
		if existing.VariantID == line.VariantID {
			copied := *line
			f.lines[line.CartID][i] = &copied
			return nil
		}
	}
	copied := *line
	f.lines[line.CartID] = append(f.lines[line.CartID], &copied)
	return nil
}

func (f *fakeCartRepo) DeleteLine(ctx context.Context, cartID string, variantID int64) error {
	kept := f.lines[cartID][:0]
	for _, line := range f.lines[cartID] {
		if line.VariantID != variantID {
			kept = append(kept, line)
		}
	}
	f.lines[cartID] = kept
	return nil
}

type fakeCatalog struct {
	client.CatalogClient
	variants map[int64]*model.Variant
}

func (f *fakeCatalog) GetVariant(ctx context.Context, id int64) (*model.Variant, error) {
	v, ok := f.variants[id]
	if !ok {
		return nil, fmt.Errorf("variant %d not found", id)
	}
	return v, nil
}

type fakeVouchers struct {
	client.VoucherClient
	byCode      map[string]*model.Voucher
	phoneLookup bool
}

func (f *fakeVouchers) GetByCode(ctx context.Context, code string, userID int64) (*model.Voucher, error) {
	return f.lookup(code)
}

func (f *fakeVouchers) GetByCodeForPhone(ctx context.Context, code, phone string) (*model.Voucher, error) {
	f.phoneLookup = true
	return f.lookup(code)
}

func (f *fakeVouchers) lookup(code string) (*model.Voucher, error) {
	v, ok := f.byCode[code]
	if !ok {
		return nil, client.ErrVoucherRejected
	}
	return v, nil
}

type fakeOrders struct {
	client.OrderClient
	placed   []*client.OrderDraft
	envelope *model.Envelope
}

func (f *fakeOrders) Place(ctx context.Context, draft *client.OrderDraft) (*model.Envelope, error) {
	f.placed = append(f.placed, draft)
	if f.envelope != nil {
		return f.envelope, nil
	}
	return &model.Envelope{Status: model.StatusOK, Message: "order created"}, nil
}

type nilCredRepo struct{}

func (nilCredRepo) Save(ctx context.Context, cred *model.Credential) error { return nil }
func (nilCredRepo) Get(ctx context.Context, key string) (*model.Credential, error) {
	return nil, nil
}
func (nilCredRepo) Delete(ctx context.Context, key string) error { return nil }

func newCheckoutFixture() (*fakeCartRepo, *fakeVouchers, *fakeOrders, CheckoutService) {
	repo := newFakeCartRepo()
	catalog := &fakeCatalog{variants: map[int64]*model.Variant{
		11: {ID: 11, Price: 100000},
		12: {ID: 12, Price: 50000},
	}}
	vouchers := &fakeVouchers{byCode: map[string]*model.Voucher{
		"SUMMER10": {Code: "SUMMER10", DiscountType: "percentage", Discount: 10, MaxDiscountAmount: 15000},
		"FLAT300K": {Code: "FLAT300K", DiscountType: "fixed", Discount: 300000},
	}}
	orders := &fakeOrders{}
	svc := NewCheckoutService(repo, catalog, vouchers, orders, session.NewStore(nilCredRepo{}))
	return repo, vouchers, orders, svc
}

func seedCart(t *testing.T, svc CheckoutService) string {
	t.Helper()
	ctx := context.Background()

	view, err := svc.CreateCart(ctx, &dto.CreateCartRequest{Channel: ChannelStorefront})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, view.ID, 11, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, view.ID, 12, 1)
	require.NoError(t, err)

	return view.ID
}

func TestCheckout_TotalsWithoutVoucher(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()
	cartID := seedCart(t, svc)

	view, err := svc.GetCart(context.Background(), cartID)
	require.NoError(t, err)
	assert.Equal(t, int64(250000), view.Subtotal)
	assert.Equal(t, int64(250000), view.Total)
	assert.Equal(t, int64(0), view.Discount)
	assert.Len(t, view.Lines, 2)
}

func TestCheckout_AddItemBumpsQuantity(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()
	cartID := seedCart(t, svc)

	view, err := svc.AddItem(context.Background(), cartID, 11, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.Equal(t, int64(350000), view.Subtotal)
}

func TestCheckout_PercentageVoucherCapped(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()
	cartID := seedCart(t, svc)

	view, err := svc.ApplyVoucher(context.Background(), cartID, "SUMMER10")
	require.NoError(t, err)
	// 10% of 250000 is 25000, capped at 15000.
	assert.Equal(t, int64(15000), view.Discount)
	assert.Equal(t, int64(235000), view.Total)
	require.NotNil(t, view.Voucher)
	assert.Equal(t, "SUMMER10", view.Voucher.Code)
}

func TestCheckout_FixedVoucherClampsAtZero(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()
	cartID := seedCart(t, svc)

	view, err := svc.ApplyVoucher(context.Background(), cartID, "FLAT300K")
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.Total)
	assert.Equal(t, int64(250000), view.Subtotal)
}

func TestCheckout_ReapplyingUsedCodeRejected(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()
	cartID := seedCart(t, svc)
	ctx := context.Background()

	_, err := svc.ApplyVoucher(ctx, cartID, "SUMMER10")
	require.NoError(t, err)

	_, err = svc.ApplyVoucher(ctx, cartID, "SUMMER10")
	assert.ErrorIs(t, err, ErrVoucherAlreadyUsed)
}

func TestCheckout_ReplacingVoucherFreesOldCode(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()
	cartID := seedCart(t, svc)
	ctx := context.Background()

	_, err := svc.ApplyVoucher(ctx, cartID, "SUMMER10")
	require.NoError(t, err)
	_, err = svc.ApplyVoucher(ctx, cartID, "FLAT300K")
	require.NoError(t, err)

	// SUMMER10 was replaced, so it can come back.
	view, err := svc.ApplyVoucher(ctx, cartID, "SUMMER10")
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", view.Voucher.Code)
}

func TestCheckout_RemoveVoucherRestoresSubtotal(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()
	cartID := seedCart(t, svc)
	ctx := context.Background()

	_, err := svc.ApplyVoucher(ctx, cartID, "SUMMER10")
	require.NoError(t, err)

	view, err := svc.RemoveVoucher(ctx, cartID)
	require.NoError(t, err)
	assert.Nil(t, view.Voucher)
	assert.Equal(t, view.Subtotal, view.Total)

	_, err = svc.RemoveVoucher(ctx, cartID)
	assert.ErrorIs(t, err, ErrNoActiveVoucher)
}

func TestCheckout_CashierLookupUsesPhoneNumber(t *testing.T) {
	repo := newFakeCartRepo()
	catalog := &fakeCatalog{variants: map[int64]*model.Variant{11: {ID: 11, Price: 100000}}}
	vouchers := &fakeVouchers{byCode: map[string]*model.Voucher{
		"WALKIN5": {Code: "WALKIN5", DiscountType: "fixed", Discount: 5000},
	}}
	svc := NewCheckoutService(repo, catalog, vouchers, &fakeOrders{}, session.NewStore(nilCredRepo{}))
	ctx := context.Background()

	view, err := svc.CreateCart(ctx, &dto.CreateCartRequest{Channel: ChannelCashier, PhoneNumber: "0901234567"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, view.ID, 11, 1)
	require.NoError(t, err)

	_, err = svc.ApplyVoucher(ctx, view.ID, "WALKIN5")
	require.NoError(t, err)
	assert.True(t, vouchers.phoneLookup)
}

func TestCheckout_PlaceOrderDiscardsCart(t *testing.T) {
	repo, _, orders, svc := newCheckoutFixture()
	cartID := seedCart(t, svc)
	ctx := context.Background()

	_, err := svc.ApplyVoucher(ctx, cartID, "SUMMER10")
	require.NoError(t, err)

	result, err := svc.PlaceOrder(ctx, cartID, &dto.PlaceOrderRequest{
		FullName:      "Nguyen Van A",
		PhoneNumber:   "0901234567",
		Address:       "1 Le Loi",
		PaymentMethod: "cod",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(235000), result.Total)

	require.Len(t, orders.placed, 1)
	draft := orders.placed[0]
	assert.Equal(t, int64(235000), draft.TotalMoney)
	assert.Equal(t, []string{"SUMMER10"}, draft.Codes)
	assert.Equal(t, "pending", draft.Status)
	require.Len(t, draft.CartItems, 2)

	assert.Empty(t, repo.carts, "cart must be discarded after successful placement")

	_, err = svc.GetCart(ctx, cartID)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCheckout_PlaceOrderRejectedKeepsCart(t *testing.T) {
	repo, _, orders, svc := newCheckoutFixture()
	cartID := seedCart(t, svc)
	orders.envelope = &model.Envelope{
		Status:  "OUT_OF_STOCK",
		Message: "variant 11 out of stock",
	}

	_, err := svc.PlaceOrder(context.Background(), cartID, &dto.PlaceOrderRequest{FullName: "A"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderRejected)
	assert.NotEmpty(t, repo.carts, "rejected order must keep the cart")
}

func TestCheckout_PlaceOrderEmptyCart(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()
	ctx := context.Background()

	view, err := svc.CreateCart(ctx, &dto.CreateCartRequest{})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, view.ID, &dto.PlaceOrderRequest{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_UnknownCart(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()

	_, err := svc.GetCart(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCartNotFound)

	err = svc.DiscardCart(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
