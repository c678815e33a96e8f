package service

import (
	"context"
	"errors"

	"github.com/robomover/api/internal/priceextract"
	"github.com/robomover/api/internal/repository"
	"github.com/robomover/api/internal/vapi"
)

// ErrMalformedReport indicates an end-of-call report missing the fields that
// identify the inquiry.
var ErrMalformedReport = errors.New("report is missing call id or customer number")

// ReportOutcome classifies how a webhook delivery was handled.
type ReportOutcome string

const (
	// ReportIgnored means the message type is not an end-of-call report.
	ReportIgnored ReportOutcome = "ignored"
	// ReportApplied means an inquiry row was updated.
	ReportApplied ReportOutcome = "applied"
	// ReportUnmatched means no inquiry matched the call id and number.
	ReportUnmatched ReportOutcome = "unmatched"
)

// WebhookService ingests provider webhooks into the inquiry ledger.
type WebhookService struct {
	inquiries repository.InquiriesRepository
	extractor priceextract.Extractor
}

// NewWebhookService wires webhook ingestion. The extractor is optional; when
// nil, reports without a structured price are stored priceless.
func NewWebhookService(inquiries repository.InquiriesRepository, extractor priceextract.Extractor) *WebhookService {
	return &WebhookService{inquiries: inquiries, extractor: extractor}
}

// ProcessReport applies one webhook delivery. Non-report message types are
// acknowledged without effect. Reports that match no inquiry are a no-op,
// not an error, since the provider may redeliver or the inquiry may have
// been deleted.
func (s *WebhookService) ProcessReport(ctx context.Context, envelope *vapi.WebhookEnvelope) (ReportOutcome, error) {
	if !envelope.IsEndOfCallReport() {
		webhookReportsTotal.WithLabelValues("ignored").Inc()
		return ReportIgnored, nil
	}

	message := envelope.Message
	if message.Call.ID == "" || message.Customer.Number == "" {
		webhookReportsTotal.WithLabelValues("malformed").Inc()
		return "", ErrMalformedReport
	}

	price := message.Analysis.StructuredData.Price
	if price == nil && s.extractor != nil && message.Transcript != "" {
		// Fallback extraction failure is tolerable; the quote stays priceless.
		if extracted, err := s.extractor.ExtractPrice(ctx, message.Transcript, message.Call.ID); err == nil {
			price = &extracted
		}
	}

	applied, err := s.inquiries.RecordCompletion(ctx, repository.CompletionUpdate{
		ProviderCallID:  message.Call.ID,
		PhoneNumber:     NormalizePhoneNumber(message.Customer.Number),
		Price:           price,
		Summary:         message.Summary,
		Transcript:      message.Transcript,
		DurationMinutes: message.DurationMinutes,
	})
	if err != nil {
		return "", err
	}
	if !applied {
		webhookReportsTotal.WithLabelValues("unmatched").Inc()
		return ReportUnmatched, nil
	}
	webhookReportsTotal.WithLabelValues("applied").Inc()
	return ReportApplied, nil
}
