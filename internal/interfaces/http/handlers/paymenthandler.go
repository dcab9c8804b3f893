package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentdto "bilig/internal/application/payment/dto"
	"bilig/internal/shared/logger"
)

// callbackBodyLimit caps webhook payload reads. Provider callbacks are
// tiny; anything larger is not a legitimate delivery.
const callbackBodyLimit = 1 << 20

// PaymentHandler receives webhook deliveries from the payment provider.
type PaymentHandler struct {
	handleCallbackUC handleCallbackUseCase
	logger           logger.Interface
}

func NewPaymentHandler(handleCallbackUC handleCallbackUseCase, logger logger.Interface) *PaymentHandler {
	return &PaymentHandler{
		handleCallbackUC: handleCallbackUC,
		logger:           logger,
	}
}

// QPayCallback processes one webhook delivery. Every delivery is
// acknowledged with 200, whatever happens inside: the provider's retry
// policy is outside our control and a non-200 only causes a retry storm.
// Failed reconciliations are logged and picked up by the next delivery
// or a manual reconcile; the ack body carries an ok flag and a note.
func (h *PaymentHandler) QPayCallback(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, callbackBodyLimit))
	if err != nil {
		h.logger.Errorw("failed to read callback body", "error", err)
		c.JSON(http.StatusOK, gin.H{"ok": false, "note": "failed to read request body"})
		return
	}

	params := make(map[string]string, len(c.Request.URL.Query()))
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	result, err := h.handleCallbackUC.Execute(c.Request.Context(), paymentdto.CallbackRequest{
		RawBody: string(body),
		Params:  params,
	})
	if err != nil {
		h.logger.Errorw("callback reconciliation incomplete", "error", err)
		c.JSON(http.StatusOK, gin.H{"ok": false, "note": "reconciliation incomplete"})
		return
	}

	if !result.OrderFound {
		h.logger.Warnw("callback matched no order", "invoice_id", result.InvoiceID)
		c.JSON(http.StatusOK, gin.H{"ok": true, "note": "no matching order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
