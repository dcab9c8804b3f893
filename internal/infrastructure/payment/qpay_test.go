package payment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appPayment "bilig/internal/application/payment"
	sharedConfig "bilig/internal/shared/config"
	"bilig/internal/shared/logger"
)

func newTestClient(t *testing.T, handler http.Handler, maxRetries int) *QPayClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewQPayClient(&sharedConfig.QPayConfig{
		BaseURL:        server.URL,
		Username:       "merchant",
		Password:       "secret",
		InvoiceCode:    "BILIG_INVOICE",
		CallbackURL:    "https://example.test/api/payments/qpay/callback",
		TimeoutSeconds: 5,
		MaxRetries:     maxRetries,
	}, logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func tokenHandler(tokenCalls *atomic.Int64) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "merchant" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"expires_in":   3600,
		})
	}
}

func TestQPayClient_CreateInvoice(t *testing.T) {
	var tokenCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/auth/token", tokenHandler(&tokenCalls))
	mux.HandleFunc("/v2/invoice", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "BILIG_INVOICE", req["invoice_code"])
		assert.Equal(t, "ord_123", req["sender_invoice_no"])
		assert.Equal(t, float64(150000), req["amount"])

		json.NewEncoder(w).Encode(map[string]any{
			"invoice_id":    "inv-qpay-1",
			"qr_text":       "0002010102...",
			"qr_image":      "iVBORw0KGgo=",
			"qPay_shortUrl": "https://s.qpay.mn/abc",
			"urls": []map[string]string{
				{"name": "Khan bank", "description": "Хаан банк", "link": "khanbank://q?qPay_QRcode=..."},
			},
		})
	})

	client := newTestClient(t, mux, 0)
	invoice, err := client.CreateInvoice(context.Background(), appPayment.CreateInvoiceParams{
		OrderNo:     "ord_123",
		Amount:      150000,
		Currency:    "MNT",
		Description: "Course purchase",
		ReceiverSID: "usr_42",
	})
	require.NoError(t, err)
	assert.Equal(t, "inv-qpay-1", invoice.InvoiceID)
	assert.Equal(t, "https://s.qpay.mn/abc", invoice.ShortURL)
	require.Len(t, invoice.DeepLinks, 1)
	assert.Equal(t, "Khan bank", invoice.DeepLinks[0].Name)
}

func TestQPayClient_CheckPaymentSumsSettledRows(t *testing.T) {
	var tokenCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/auth/token", tokenHandler(&tokenCalls))
	mux.HandleFunc("/v2/payment/check", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "INVOICE", req["object_type"])
		assert.Equal(t, "inv-qpay-1", req["object_id"])

		json.NewEncoder(w).Encode(map[string]any{
			"count":       2,
			"paid_amount": 150000,
			"rows": []map[string]any{
				{"payment_id": "p1", "payment_status": "PAID", "payment_amount": 100000, "payment_currency": "MNT"},
				{"payment_id": "p2", "payment_status": "PAID", "payment_amount": 50000, "payment_currency": "MNT"},
				{"payment_id": "p3", "payment_status": "FAILED", "payment_amount": 150000, "payment_currency": "MNT"},
			},
		})
	})

	client := newTestClient(t, mux, 0)
	result, err := client.CheckPayment(context.Background(), "inv-qpay-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	// Only PAID rows count toward the settled amount.
	assert.Equal(t, int64(150000), result.PaidAmount)
	assert.Len(t, result.Payments, 3)
	assert.NotEmpty(t, result.Raw)
}

func TestQPayClient_TokenCachedAcrossCalls(t *testing.T) {
	var tokenCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/auth/token", tokenHandler(&tokenCalls))
	mux.HandleFunc("/v2/payment/check", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"count": 0, "paid_amount": 0, "rows": []any{}})
	})

	client := newTestClient(t, mux, 0)
	for i := 0; i < 3; i++ {
		_, err := client.CheckPayment(context.Background(), "inv-1")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), tokenCalls.Load())
}

func TestQPayClient_RetriesServerErrors(t *testing.T) {
	var tokenCalls atomic.Int64
	var checkCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/auth/token", tokenHandler(&tokenCalls))
	mux.HandleFunc("/v2/payment/check", func(w http.ResponseWriter, r *http.Request) {
		if checkCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"count": 1, "paid_amount": 5000, "rows": []map[string]any{
			{"payment_id": "p1", "payment_status": "PAID", "payment_amount": 5000, "payment_currency": "MNT"},
		}})
	})

	client := newTestClient(t, mux, 2)
	result, err := client.CheckPayment(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), result.PaidAmount)
	assert.Equal(t, int64(2), checkCalls.Load())
}

func TestQPayClient_BadRequestNotRetried(t *testing.T) {
	var tokenCalls atomic.Int64
	var invoiceCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/auth/token", tokenHandler(&tokenCalls))
	mux.HandleFunc("/v2/invoice", func(w http.ResponseWriter, r *http.Request) {
		invoiceCalls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"INVOICE_CODE_INVALID"}`))
	})

	client := newTestClient(t, mux, 2)
	_, err := client.CreateInvoice(context.Background(), appPayment.CreateInvoiceParams{
		OrderNo: "ord_1", Amount: 1000, Currency: "MNT",
	})
	require.Error(t, err)
	assert.Equal(t, int64(1), invoiceCalls.Load())
}

func TestQPayClient_ReauthenticatesAfterTokenRejected(t *testing.T) {
	var tokenCalls atomic.Int64
	var checkCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/auth/token", tokenHandler(&tokenCalls))
	mux.HandleFunc("/v2/payment/check", func(w http.ResponseWriter, r *http.Request) {
		if checkCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"count": 0, "paid_amount": 0, "rows": []any{}})
	})

	client := newTestClient(t, mux, 1)
	_, err := client.CheckPayment(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), tokenCalls.Load())
}
