package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/robomover/api/internal/service"
	"github.com/robomover/api/internal/vapi"
)

// WebhookHandler receives provider webhooks on the public surface.
type WebhookHandler struct {
	webhooks *service.WebhookService
	secret   string
}

// NewWebhookHandler constructs the handler. An empty secret disables the
// shared-secret check.
func NewWebhookHandler(webhooks *service.WebhookService, secret string) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, secret: secret}
}

// Report handles POST /vapi_webhook_report. Every well-formed delivery is
// acknowledged with 200 so the provider stops redelivering; only malformed
// reports and verification failures are rejected.
func (h *WebhookHandler) Report(c echo.Context) error {
	if h.secret != "" {
		provided := c.Request().Header.Get("X-Vapi-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			return Error(c, http.StatusUnauthorized, "invalid webhook secret")
		}
	}

	var envelope vapi.WebhookEnvelope
	if err := c.Bind(&envelope); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	outcome, err := h.webhooks.ProcessReport(c.Request().Context(), &envelope)
	if err != nil {
		if errors.Is(err, service.ErrMalformedReport) {
			return Error(c, http.StatusBadRequest, "report is missing call id or customer number")
		}
		return Error(c, http.StatusInternalServerError, "unable to process report")
	}

	return Success(c, http.StatusOK, "report "+string(outcome), nil)
}
