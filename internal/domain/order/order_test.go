package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "bilig/internal/domain/shared/valueobjects"
)

// --- helpers ---

func validAmount() vo.Money {
	return vo.NewMoney(50000, "MNT")
}

func validOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(1, 2, validAmount(), PaymentMethodQPay)
	require.NoError(t, err)
	return o
}

func reconstructWithStatus(status Status) *Order {
	now := time.Now().UTC()
	return ReconstructOrder(OrderReconstructParams{
		ID:            10,
		OrderNo:       "ORD20260101000000000001",
		UserID:        1,
		CourseID:      2,
		Amount:        validAmount(),
		PaymentMethod: PaymentMethodQPay,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
	})
}

// =============================================================================
// Constructor
// =============================================================================

func TestNewOrder_ValidInput(t *testing.T) {
	o := validOrder(t)

	assert.Equal(t, StatusPending, o.Status())
	assert.Equal(t, uint(1), o.UserID())
	assert.Equal(t, uint(2), o.CourseID())
	assert.True(t, o.Amount().Equals(validAmount()))
	assert.NotEmpty(t, o.OrderNo())
	assert.Nil(t, o.InvoiceID())
	assert.Nil(t, o.PaidAt())
}

func TestNewOrder_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		userID   uint
		courseID uint
		amount   vo.Money
		method   PaymentMethod
	}{
		{"zero user", 0, 2, validAmount(), PaymentMethodQPay},
		{"zero course", 1, 0, validAmount(), PaymentMethodQPay},
		{"zero amount", 1, 2, vo.NewMoney(0, "MNT"), PaymentMethodQPay},
		{"negative amount", 1, 2, vo.NewMoney(-100, "MNT"), PaymentMethodQPay},
		{"invalid method", 1, 2, validAmount(), PaymentMethod("cash")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.userID, tt.courseID, tt.amount, tt.method)
			assert.Error(t, err)
		})
	}
}

// =============================================================================
// Status transitions
// =============================================================================

func TestOrder_MarkAsPaid(t *testing.T) {
	o := validOrder(t)

	err := o.MarkAsPaid("TXN-001")
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, o.Status())
	require.NotNil(t, o.TransactionID())
	assert.Equal(t, "TXN-001", *o.TransactionID())
	require.NotNil(t, o.PaidAt())
}

func TestOrder_MarkAsPaid_AlreadyPaidIsNoOp(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.MarkAsPaid("TXN-001"))
	firstPaidAt := *o.PaidAt()
	firstVersion := o.Version()

	// Duplicate webhook delivery must not alter the settled order.
	err := o.MarkAsPaid("TXN-002")
	require.NoError(t, err)

	assert.Equal(t, "TXN-001", *o.TransactionID())
	assert.Equal(t, firstPaidAt, *o.PaidAt())
	assert.Equal(t, firstVersion, o.Version())
}

func TestOrder_MarkAsPaid_FromTerminalState(t *testing.T) {
	for _, status := range []Status{StatusFailed, StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			o := reconstructWithStatus(status)
			err := o.MarkAsPaid("TXN-001")
			assert.Error(t, err)
			assert.Equal(t, status, o.Status())
		})
	}
}

func TestOrder_Cancel_PaidOrderRejected(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.MarkAsPaid("TXN-001"))

	err := o.Cancel()
	assert.Error(t, err)
	assert.Equal(t, StatusPaid, o.Status())
}

func TestOrder_MarkAsFailed_PaidOrderRejected(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.MarkAsPaid("TXN-001"))

	err := o.MarkAsFailed()
	assert.Error(t, err)
	assert.Equal(t, StatusPaid, o.Status())
}

func TestOrder_Cancel_Idempotent(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.Cancel())
	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status())
}

func TestOrder_SetInvoiceID(t *testing.T) {
	o := validOrder(t)

	require.NoError(t, o.SetInvoiceID("INV-123"))
	require.NotNil(t, o.InvoiceID())
	assert.Equal(t, "INV-123", *o.InvoiceID())

	require.NoError(t, o.MarkAsPaid("TXN-001"))
	assert.Error(t, o.SetInvoiceID("INV-456"))
}

// =============================================================================
// Audit records
// =============================================================================

func TestOrder_RecordCallback_AppendOnly(t *testing.T) {
	o := validOrder(t)

	o.RecordCallback(`{"payment_id":"p1"}`)
	o.RecordCallback(`{"payment_id":"p2"}`)

	require.Len(t, o.CallbackLog(), 2)
	assert.Equal(t, `{"payment_id":"p1"}`, o.CallbackLog()[0])
}

func TestOrder_RecordCallback_AllowedOnSettledOrder(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.MarkAsPaid("TXN-001"))

	o.RecordCallback(`{"payment_id":"late"}`)
	o.RecordVerification(`{"count":1}`)

	assert.Len(t, o.CallbackLog(), 1)
	require.NotNil(t, o.LastVerification())
	assert.Equal(t, StatusPaid, o.Status())
}
