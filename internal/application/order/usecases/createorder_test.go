package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entusecases "bilig/internal/application/entitlement/usecases"
	"bilig/internal/application/order/dto"
	"bilig/internal/application/payment"
	"bilig/internal/domain/course"
	"bilig/internal/domain/entitlement"
	"bilig/internal/domain/order"
	vo "bilig/internal/domain/shared/valueobjects"
	"bilig/internal/shared/logger"
)

type memOrderRepo struct {
	orders []*order.Order
	nextID uint
}

func (r *memOrderRepo) Create(ctx context.Context, o *order.Order) error {
	r.nextID++
	o.SetID(r.nextID)
	r.orders = append(r.orders, o)
	return nil
}
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
	for _, o := range r.orders {
		if o.InvoiceID() != nil && *o.InvoiceID() == invoiceID {
			return o, nil
		}
	}
	return nil, nil
}
func (r *memOrderRepo) GetPendingByUserAndCourse(ctx context.Context, userID, courseID uint) (*order.Order, error) {
	for _, o := range r.orders {
		if o.UserID() == userID && o.CourseID() == courseID && o.Status().IsPending() {
			return o, nil
		}
	}
	return nil, nil
}
func (r *memOrderRepo) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}
func (r *memOrderRepo) List(ctx context.Context, status order.Status, offset, limit int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

type stubCourseRepo struct {
	course *course.Course
}

func (r *stubCourseRepo) Create(ctx context.Context, c *course.Course) error { return nil }
func (r *stubCourseRepo) Update(ctx context.Context, c *course.Course) error { return nil }
func (r *stubCourseRepo) Delete(ctx context.Context, courseID uint) error    { return nil }
func (r *stubCourseRepo) GetByID(ctx context.Context, courseID uint) (*course.Course, error) {
	return r.course, nil
}
func (r *stubCourseRepo) GetBySID(ctx context.Context, sid string) (*course.Course, error) {
	return r.course, nil
}
func (r *stubCourseRepo) List(ctx context.Context, status course.Status, offset, limit int) ([]*course.Course, int64, error) {
	return nil, 0, nil
}
func (r *stubCourseRepo) ExistingIDs(ctx context.Context, courseIDs []uint) (map[uint]bool, error) {
	return nil, nil
}

type countingGateway struct {
	invoices int
}

func (g *countingGateway) CreateInvoice(ctx context.Context, params payment.CreateInvoiceParams) (*payment.Invoice, error) {
	g.invoices++
	return &payment.Invoice{
		InvoiceID: fmt.Sprintf("inv-%d", g.invoices),
		QRText:    "qr-data",
		ShortURL:  "https://s.qpay.mn/abc",
	}, nil
}
func (g *countingGateway) CheckPayment(ctx context.Context, invoiceID string) (*payment.CheckResult, error) {
	return &payment.CheckResult{}, nil
}

func courseWithStatus(t *testing.T, amount int64, status course.Status) *course.Course {
	t.Helper()
	c, err := course.ReconstructCourse(
		10, "crs_test",
		course.BilingualText{MN: "Го хэл"},
		course.BilingualText{},
		vo.NewMoney(amount, "MNT"),
		status,
		nil,
		time.Now().UTC(), time.Now().UTC(), 1,
	)
	require.NoError(t, err)
	return c
}

func TestCreateOrder_StartsCheckout(t *testing.T) {
	repo := &memOrderRepo{}
	gateway := &countingGateway{}
	uc := NewCreateOrderUseCase(repo, &stubCourseRepo{course: courseWithStatus(t, 50000, course.StatusActive)}, gateway, logger.NewLogger())

	resp, err := uc.Execute(context.Background(), dto.CreateOrderRequest{UserID: 1, CourseID: 10})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Order.Status)
	assert.Equal(t, int64(50000), resp.Order.Amount)
	assert.Equal(t, "inv-1", resp.InvoiceID)
	assert.Equal(t, "qr-data", resp.QRText)
	assert.Len(t, repo.orders, 1)
}

func TestCreateOrder_ReusesPendingOrder(t *testing.T) {
	repo := &memOrderRepo{}
	gateway := &countingGateway{}
	uc := NewCreateOrderUseCase(repo, &stubCourseRepo{course: courseWithStatus(t, 50000, course.StatusActive)}, gateway, logger.NewLogger())
	ctx := context.Background()

	first, err := uc.Execute(ctx, dto.CreateOrderRequest{UserID: 1, CourseID: 10})
	require.NoError(t, err)
	second, err := uc.Execute(ctx, dto.CreateOrderRequest{UserID: 1, CourseID: 10})
	require.NoError(t, err)

	assert.Equal(t, first.Order.OrderNo, second.Order.OrderNo)
	assert.Equal(t, 1, gateway.invoices)
	assert.Len(t, repo.orders, 1)
}

func TestCreateOrder_RepricedCourseReplacesPendingOrder(t *testing.T) {
	repo := &memOrderRepo{}
	gateway := &countingGateway{}
	courses := &stubCourseRepo{course: courseWithStatus(t, 50000, course.StatusActive)}
	uc := NewCreateOrderUseCase(repo, courses, gateway, logger.NewLogger())
	ctx := context.Background()

	first, err := uc.Execute(ctx, dto.CreateOrderRequest{UserID: 1, CourseID: 10})
	require.NoError(t, err)

	courses.course = courseWithStatus(t, 75000, course.StatusActive)
	second, err := uc.Execute(ctx, dto.CreateOrderRequest{UserID: 1, CourseID: 10})
	require.NoError(t, err)

	assert.NotEqual(t, first.Order.OrderNo, second.Order.OrderNo)
	assert.Equal(t, int64(75000), second.Order.Amount)

	old, err := repo.GetByOrderNo(ctx, first.Order.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, old.Status())
}

func TestCreateOrder_RejectsNonPurchasable(t *testing.T) {
	tests := []struct {
		name   string
		course *course.Course
	}{
		{"free course", courseWithStatus(t, 0, course.StatusActive)},
		{"draft course", courseWithStatus(t, 50000, course.StatusDraft)},
		{"archived course", courseWithStatus(t, 50000, course.StatusArchived)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateOrderUseCase(&memOrderRepo{}, &stubCourseRepo{course: tt.course}, &countingGateway{}, logger.NewLogger())
			_, err := uc.Execute(context.Background(), dto.CreateOrderRequest{UserID: 1, CourseID: 10})
			assert.Error(t, err)
		})
	}
}

type memEntitlementRepo struct {
	records map[string]*entitlement.Entitlement
}

func (r *memEntitlementRepo) key(userID, courseID uint) string {
	return fmt.Sprintf("%d/%d", userID, courseID)
}
func (r *memEntitlementRepo) Create(ctx context.Context, e *entitlement.Entitlement) error {
	if r.records == nil {
		r.records = make(map[string]*entitlement.Entitlement)
	}
	_ = e.SetID(uint(len(r.records) + 1))
	r.records[r.key(e.UserID(), e.CourseID())] = e
	return nil
}
func (r *memEntitlementRepo) Update(ctx context.Context, e *entitlement.Entitlement) error {
	return nil
}
func (r *memEntitlementRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*entitlement.Entitlement, error) {
	return r.records[r.key(userID, courseID)], nil
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

func TestOverrideOrderStatus_PaidGrantsAccess(t *testing.T) {
	repo := &memOrderRepo{}
	o, err := order.NewOrder(1, 10, vo.NewMoney(50000, "MNT"), order.PaymentMethodQPay)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), o))

	entRepo := &memEntitlementRepo{}
	grant := entusecases.NewGrantAccessUseCase(entRepo, logger.NewLogger())
	uc := NewOverrideOrderStatusUseCase(repo, grant, logger.NewLogger())

	resp, err := uc.Execute(context.Background(), dto.OverrideStatusRequest{
		OrderNo: o.OrderNo(),
		Status:  "paid",
		Reason:  "bank transfer confirmed by finance",
		AdminID: 9,
	})
	require.NoError(t, err)

	assert.Equal(t, "paid", resp.Status)
	ent, _ := entRepo.GetByUserAndCourse(context.Background(), 1, 10)
	require.NotNil(t, ent)
	assert.True(t, ent.IsActive())
}

func TestOverrideOrderStatus_CannotCancelPaidOrder(t *testing.T) {
	repo := &memOrderRepo{}
	o, err := order.NewOrder(1, 10, vo.NewMoney(50000, "MNT"), order.PaymentMethodQPay)
	require.NoError(t, err)
	require.NoError(t, o.MarkAsPaid("tx-1"))
	require.NoError(t, repo.Create(context.Background(), o))

	uc := NewOverrideOrderStatusUseCase(repo, nil, logger.NewLogger())

	_, err = uc.Execute(context.Background(), dto.OverrideStatusRequest{
		OrderNo: o.OrderNo(),
		Status:  "cancelled",
		AdminID: 9,
	})
	assert.Error(t, err)
}

func TestOverrideOrderStatus_RejectsPendingTarget(t *testing.T) {
	uc := NewOverrideOrderStatusUseCase(&memOrderRepo{}, nil, logger.NewLogger())

	_, err := uc.Execute(context.Background(), dto.OverrideStatusRequest{
		OrderNo: "ORD-1",
		Status:  "pending",
	})
	assert.Error(t, err)
}
