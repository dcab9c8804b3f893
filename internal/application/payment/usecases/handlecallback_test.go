package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entusecases "bilig/internal/application/entitlement/usecases"
	"bilig/internal/application/payment"
	"bilig/internal/application/payment/dto"
	"bilig/internal/domain/entitlement"
	"bilig/internal/domain/order"
	vo "bilig/internal/domain/shared/valueobjects"
	"bilig/internal/shared/logger"
)

// --- stubs ---

type memOrderRepo struct {
	orders map[string]*order.Order // keyed by invoice ID
	nextID uint
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*order.Order), nextID: 1}
}

func (r *memOrderRepo) add(o *order.Order) {
	o.SetID(r.nextID)
	r.nextID++
	if o.InvoiceID() != nil {
		r.orders[*o.InvoiceID()] = o
	}
}

func (r *memOrderRepo) Create(ctx context.Context, o *order.Order) error { r.add(o); return nil }
func (r *memOrderRepo) Update(ctx context.Context, o *order.Order) error { return nil }
func (r *memOrderRepo) GetByID(ctx context.Context, orderID uint) (*order.Order, error) {
	for _, o := range r.orders {
		if o.ID() == orderID {
			return o, nil
		}
	}
	return nil, nil
}
func (r *memOrderRepo) GetByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.OrderNo() == orderNo {
			return o, nil
		}
	}
	return nil, nil
}
func (r *memOrderRepo) GetByInvoiceID(ctx context.Context, invoiceID string) (*order.Order, error) {
	return r.orders[invoiceID], nil
}
func (r *memOrderRepo) GetPendingByUserAndCourse(ctx context.Context, userID, courseID uint) (*order.Order, error) {
	return nil, nil
}
func (r *memOrderRepo) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}
func (r *memOrderRepo) List(ctx context.Context, status order.Status, offset, limit int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

type stubGateway struct {
	paidAmount int64
	checkCalls int
	failCheck  bool
}

func (g *stubGateway) CreateInvoice(ctx context.Context, params payment.CreateInvoiceParams) (*payment.Invoice, error) {
	return &payment.Invoice{InvoiceID: "inv-1"}, nil
}

func (g *stubGateway) CheckPayment(ctx context.Context, invoiceID string) (*payment.CheckResult, error) {
	g.checkCalls++
	if g.failCheck {
		return nil, fmt.Errorf("provider unreachable")
	}
	var payments []payment.PaymentRecord
	if g.paidAmount > 0 {
		payments = append(payments, payment.PaymentRecord{
			PaymentID: "pay-1",
			Status:    "PAID",
			Amount:    g.paidAmount,
			Currency:  "MNT",
		})
	}
	return &payment.CheckResult{
		Count:      len(payments),
		PaidAmount: g.paidAmount,
		Payments:   payments,
		Raw:        fmt.Sprintf(`{"paid_amount":%d}`, g.paidAmount),
	}, nil
}

type memEntitlementRepo struct {
	records map[string]*entitlement.Entitlement
	creates int
}

func newMemEntitlementRepo() *memEntitlementRepo {
	return &memEntitlementRepo{records: make(map[string]*entitlement.Entitlement)}
}

func pairKey(userID, courseID uint) string { return fmt.Sprintf("%d/%d", userID, courseID) }

func (r *memEntitlementRepo) Create(ctx context.Context, e *entitlement.Entitlement) error {
	r.creates++
	_ = e.SetID(uint(r.creates))
	r.records[pairKey(e.UserID(), e.CourseID())] = e
	return nil
}
func (r *memEntitlementRepo) Update(ctx context.Context, e *entitlement.Entitlement) error {
	return nil
}
func (r *memEntitlementRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*entitlement.Entitlement, error) {
	return r.records[pairKey(userID, courseID)], nil
}
func (r *memEntitlementRepo) GetByUser(ctx context.Context, userID uint) ([]*entitlement.Entitlement, error) {
	return nil, nil
}
func (r *memEntitlementRepo) List(ctx context.Context, offset, limit int) ([]*entitlement.Entitlement, int64, error) {
	return nil, 0, nil
}
func (r *memEntitlementRepo) GetExpired(ctx context.Context, userID uint) ([]*entitlement.Entitlement, error) {
	return nil, nil
}
func (r *memEntitlementRepo) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}
func (r *memEntitlementRepo) DeleteByCourseIDs(ctx context.Context, courseIDs []uint) (int64, error) {
	return 0, nil
}
func (r *memEntitlementRepo) DistinctCourseIDs(ctx context.Context) ([]uint, error) {
	return nil, nil
}

// --- helpers ---

func pendingOrder(t *testing.T, repo *memOrderRepo, amount int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(1, 10, vo.NewMoney(amount, "MNT"), order.PaymentMethodQPay)
	require.NoError(t, err)
	require.NoError(t, o.SetInvoiceID("inv-1"))
	repo.add(o)
	return o
}

func newCallbackFixture(t *testing.T, orderAmount, paidAmount int64) (*HandleCallbackUseCase, *memOrderRepo, *memEntitlementRepo, *stubGateway) {
	t.Helper()
	orderRepo := newMemOrderRepo()
	entRepo := newMemEntitlementRepo()
	gateway := &stubGateway{paidAmount: paidAmount}
	grant := entusecases.NewGrantAccessUseCase(entRepo, logger.NewLogger())
	uc := NewHandleCallbackUseCase(orderRepo, gateway, grant, nil, logger.NewLogger())
	pendingOrder(t, orderRepo, orderAmount)
	return uc, orderRepo, entRepo, gateway
}

func callback(body string) dto.CallbackRequest {
	return dto.CallbackRequest{RawBody: body}
}

// --- tests ---

func TestHandleCallback_SettlesAndGrantsAccess(t *testing.T) {
	uc, orderRepo, entRepo, _ := newCallbackFixture(t, 50000, 50000)

	result, err := uc.Execute(context.Background(), callback(`{"invoice_id":"inv-1"}`))
	require.NoError(t, err)

	assert.True(t, result.Settled)
	assert.True(t, result.AccessGiven)
	assert.Equal(t, "paid", result.OrderStatus)

	o, _ := orderRepo.GetByInvoiceID(context.Background(), "inv-1")
	assert.Equal(t, order.StatusPaid, o.Status())
	require.NotNil(t, o.TransactionID())
	assert.Equal(t, "pay-1", *o.TransactionID())

	ent, _ := entRepo.GetByUserAndCourse(context.Background(), 1, 10)
	require.NotNil(t, ent)
	assert.True(t, ent.IsActive())
}

func TestHandleCallback_DuplicateDeliveryIsIdempotent(t *testing.T) {
	uc, _, entRepo, _ := newCallbackFixture(t, 50000, 50000)
	ctx := context.Background()
	body := callback(`{"invoice_id":"inv-1"}`)

	first, err := uc.Execute(ctx, body)
	require.NoError(t, err)
	require.True(t, first.Settled)

	second, err := uc.Execute(ctx, body)
	require.NoError(t, err)

	assert.False(t, second.Settled)
	assert.True(t, second.AlreadyPaid)
	assert.Equal(t, 1, entRepo.creates)
}

func TestHandleCallback_AmountComesFromCheckNotWebhook(t *testing.T) {
	// The webhook claims payment but the authoritative check says the
	// invoice is short-paid. The order must stay pending.
	uc, orderRepo, entRepo, gateway := newCallbackFixture(t, 50000, 10000)

	result, err := uc.Execute(context.Background(), callback(`{"invoice_id":"inv-1","payment_status":"PAID","paid_amount":50000}`))
	require.NoError(t, err)

	assert.False(t, result.Settled)
	assert.Equal(t, int64(10000), result.PaidAmount)
	assert.Equal(t, 1, gateway.checkCalls)

	o, _ := orderRepo.GetByInvoiceID(context.Background(), "inv-1")
	assert.Equal(t, order.StatusPending, o.Status())
	require.NotNil(t, o.LastVerification())

	ent, _ := entRepo.GetByUserAndCourse(context.Background(), 1, 10)
	assert.Nil(t, ent)
}

func TestHandleCallback_OverpaymentStillSettles(t *testing.T) {
	uc, _, _, _ := newCallbackFixture(t, 50000, 60000)

	result, err := uc.Execute(context.Background(), callback(`{"invoice_id":"inv-1"}`))
	require.NoError(t, err)
	assert.True(t, result.Settled)
}

func TestHandleCallback_UnknownInvoiceAcked(t *testing.T) {
	uc, _, _, gateway := newCallbackFixture(t, 50000, 50000)

	result, err := uc.Execute(context.Background(), callback(`{"invoice_id":"inv-missing"}`))
	require.NoError(t, err)

	assert.False(t, result.OrderFound)
	assert.Equal(t, 0, gateway.checkCalls)
}

func TestHandleCallback_NoInvoiceReferenceAcked(t *testing.T) {
	uc, _, _, _ := newCallbackFixture(t, 50000, 50000)

	result, err := uc.Execute(context.Background(), callback(`{"hello":"world"}`))
	require.NoError(t, err)
	assert.False(t, result.OrderFound)
}

func TestHandleCallback_InvoiceIDFromQueryParams(t *testing.T) {
	uc, _, _, _ := newCallbackFixture(t, 50000, 50000)

	result, err := uc.Execute(context.Background(), dto.CallbackRequest{
		Params: map[string]string{"qpay_invoice_id": "inv-1"},
	})
	require.NoError(t, err)
	assert.True(t, result.Settled)
}

func TestHandleCallback_ProviderUnreachableReturnsError(t *testing.T) {
	// The delivery is recorded but the check failed; the error propagates so
	// the caller can decide how to surface it. The order stays pending.
	uc, orderRepo, _, gateway := newCallbackFixture(t, 50000, 50000)
	gateway.failCheck = true

	_, err := uc.Execute(context.Background(), callback(`{"invoice_id":"inv-1"}`))
	assert.Error(t, err)

	o, _ := orderRepo.GetByInvoiceID(context.Background(), "inv-1")
	assert.Equal(t, order.StatusPending, o.Status())
	assert.Len(t, o.CallbackLog(), 1)
}

func TestReconcileOrder_SettlesMissedPayment(t *testing.T) {
	orderRepo := newMemOrderRepo()
	entRepo := newMemEntitlementRepo()
	gateway := &stubGateway{paidAmount: 50000}
	grant := entusecases.NewGrantAccessUseCase(entRepo, logger.NewLogger())
	uc := NewReconcileOrderUseCase(orderRepo, gateway, grant, logger.NewLogger())
	o := pendingOrder(t, orderRepo, 50000)

	result, err := uc.Execute(context.Background(), o.OrderNo())
	require.NoError(t, err)

	assert.True(t, result.Settled)
	assert.Equal(t, "paid", result.OrderStatus)

	ent, _ := entRepo.GetByUserAndCourse(context.Background(), 1, 10)
	require.NotNil(t, ent)
	assert.True(t, ent.IsActive())
}

func TestReconcileOrder_UnknownOrder(t *testing.T) {
	uc := NewReconcileOrderUseCase(newMemOrderRepo(), &stubGateway{}, nil, logger.NewLogger())

	_, err := uc.Execute(context.Background(), "ORD-MISSING")
	assert.Error(t, err)
}
