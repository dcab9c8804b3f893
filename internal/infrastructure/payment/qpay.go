// Package payment implements the payment provider port on the QPay
// merchant API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"bilig/internal/application/payment"
	"bilig/internal/shared/biztime"
	sharedConfig "bilig/internal/shared/config"
	"bilig/internal/shared/logger"
)

const (
	authTokenPath    = "/v2/auth/token"
	invoicePath      = "/v2/invoice"
	paymentCheckPath = "/v2/payment/check"

	// Maximum response body size accepted from the provider (1MB; the
	// invoice response carries a base64 QR image)
	maxResponseSize = 1 << 20

	// Renew the cached token this long before its announced expiry
	tokenExpiryMargin = 60 * time.Second

	retryBackoff = 500 * time.Millisecond
)

// QPayClient implements payment.Gateway against the QPay v2 merchant API.
type QPayClient struct {
	baseURL     string
	username    string
	password    string
	invoiceCode string
	callbackURL string
	maxRetries  int
	httpClient  *http.Client
	logger      logger.Interface

	// Token cache
	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

type qpayTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type qpayInvoiceRequest struct {
	InvoiceCode         string `json:"invoice_code"`
	SenderInvoiceNo     string `json:"sender_invoice_no"`
	InvoiceReceiverCode string `json:"invoice_receiver_code"`
	InvoiceDescription  string `json:"invoice_description"`
	Amount              int64  `json:"amount"`
	CallbackURL         string `json:"callback_url"`
}

type qpayInvoiceResponse struct {
	InvoiceID string `json:"invoice_id"`
	QRText    string `json:"qr_text"`
	QRImage   string `json:"qr_image"`
	ShortURL  string `json:"qPay_shortUrl"`
	URLs      []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Logo        string `json:"logo"`
		Link        string `json:"link"`
	} `json:"urls"`
}

type qpayCheckRequest struct {
	ObjectType string `json:"object_type"`
	ObjectID   string `json:"object_id"`
	Offset     struct {
		PageNumber int `json:"page_number"`
		PageLimit  int `json:"page_limit"`
	} `json:"offset"`
}

type qpayCheckResponse struct {
	Count      int     `json:"count"`
	PaidAmount float64 `json:"paid_amount"`
	Rows       []struct {
		PaymentID       string  `json:"payment_id"`
		PaymentStatus   string  `json:"payment_status"`
		PaymentAmount   float64 `json:"payment_amount"`
		PaymentCurrency string  `json:"payment_currency"`
	} `json:"rows"`
}

// NewQPayClient creates a QPay gateway client from configuration.
func NewQPayClient(cfg *sharedConfig.QPayConfig, logger logger.Interface) *QPayClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &QPayClient{
		baseURL:     cfg.BaseURL,
		username:    cfg.Username,
		password:    cfg.Password,
		invoiceCode: cfg.InvoiceCode,
		callbackURL: cfg.CallbackURL,
		maxRetries:  cfg.MaxRetries,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Ensure QPayClient implements the gateway port
var _ payment.Gateway = (*QPayClient)(nil)

func (c *QPayClient) CreateInvoice(ctx context.Context, params payment.CreateInvoiceParams) (*payment.Invoice, error) {
	reqBody := qpayInvoiceRequest{
		InvoiceCode:         c.invoiceCode,
		SenderInvoiceNo:     params.OrderNo,
		InvoiceReceiverCode: params.ReceiverSID,
		InvoiceDescription:  params.Description,
		Amount:              params.Amount,
		CallbackURL:         c.callbackURL,
	}

	var resp qpayInvoiceResponse
	if err := c.post(ctx, invoicePath, reqBody, &resp, nil); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	if resp.InvoiceID == "" {
		return nil, fmt.Errorf("provider returned invoice without invoice_id")
	}

	c.logger.Infow("created payment invoice",
		"order_no", params.OrderNo,
		"invoice_id", resp.InvoiceID,
		"amount", params.Amount,
	)

	deepLinks := make([]payment.DeepLink, 0, len(resp.URLs))
	for _, u := range resp.URLs {
		deepLinks = append(deepLinks, payment.DeepLink{
			Name:        u.Name,
			Description: u.Description,
			Logo:        u.Logo,
			Link:        u.Link,
		})
	}

	return &payment.Invoice{
		InvoiceID: resp.InvoiceID,
		QRText:    resp.QRText,
		QRImage:   resp.QRImage,
		ShortURL:  resp.ShortURL,
		DeepLinks: deepLinks,
	}, nil
}

func (c *QPayClient) CheckPayment(ctx context.Context, invoiceID string) (*payment.CheckResult, error) {
	reqBody := qpayCheckRequest{
		ObjectType: "INVOICE",
		ObjectID:   invoiceID,
	}
	reqBody.Offset.PageNumber = 1
	reqBody.Offset.PageLimit = 100

	var resp qpayCheckResponse
	var raw []byte
	if err := c.post(ctx, paymentCheckPath, reqBody, &resp, &raw); err != nil {
		return nil, fmt.Errorf("failed to check payment: %w", err)
	}

	records := make([]payment.PaymentRecord, 0, len(resp.Rows))
	var paidSum int64
	for _, row := range resp.Rows {
		amount := int64(row.PaymentAmount)
		records = append(records, payment.PaymentRecord{
			PaymentID: row.PaymentID,
			Status:    row.PaymentStatus,
			Amount:    amount,
			Currency:  row.PaymentCurrency,
		})
		if row.PaymentStatus == "PAID" {
			paidSum += amount
		}
	}

	return &payment.CheckResult{
		Count:      resp.Count,
		PaidAmount: paidSum,
		Payments:   records,
		Raw:        string(raw),
	}, nil
}

// post sends an authenticated request, retrying transient failures.
// When rawOut is non-nil the raw response body is copied into it.
func (c *QPayClient) post(ctx context.Context, path string, reqBody, respBody any, rawOut *[]byte) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		retryable, err := c.doPost(ctx, path, reqBody, respBody, rawOut)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
		c.logger.Warnw("provider request failed, retrying",
			"path", path, "attempt", attempt+1, "error", err)
	}
	return lastErr
}

func (c *QPayClient) doPost(ctx context.Context, path string, reqBody, respBody any, rawOut *[]byte) (retryable bool, err error) {
	token, err := c.token(ctx)
	if err != nil {
		return true, err
	}

	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return false, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return true, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token revoked server side; drop the cache so the next attempt
		// authenticates again.
		c.mu.Lock()
		c.accessToken = ""
		c.mu.Unlock()
		return true, fmt.Errorf("provider rejected token: status %d", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return true, fmt.Errorf("provider error: status %d, body: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("provider rejected request: status %d, body: %s", resp.StatusCode, string(body))
	}

	if rawOut != nil {
		*rawOut = body
	}
	if err := json.Unmarshal(body, respBody); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return false, nil
}

// token returns a cached access token, authenticating when the cache is
// empty or near expiry.
func (c *QPayClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && biztime.NowUTC().Before(c.tokenExpiry.Add(-tokenExpiryMargin)) {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authTokenPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to authenticate with provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider authentication failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var tokenResp qpayTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("provider returned empty access token")
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = biztime.NowUTC().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return c.accessToken, nil
}
