// Package storage persists resume content, customization, and the payment
// flag under three logical keys. Loads tolerate missing keys and malformed
// payloads: both are reported as "absent", logged, and never surfaced to the
// user as a hard failure.
package storage

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/inkwellhq/resumepress/internal/resume"
)

const (
	keyResumeData    = "resumeBuilderData"
	keyCustomization = "resumeCustomization"
	keyPayment       = "paymentCompleted"

	paymentSentinel = "true"
)

// Store is the durable backing for session state. Writes are small and
// user-paced; last write wins.
type Store interface {
	SaveResume(ctx context.Context, data resume.Data) error
	LoadResume(ctx context.Context) (resume.Data, bool, error)

	SaveCustomization(ctx context.Context, c resume.Customization) error
	LoadCustomization(ctx context.Context) (resume.Customization, bool, error)

	// MarkPaymentCompleted is set only by a successful payment callback and
	// is never cleared by any page flow. ClearPayment is the explicit reset
	// operation, reachable only through the CLI.
	MarkPaymentCompleted(ctx context.Context) error
	PaymentCompleted(ctx context.Context) (bool, error)
	ClearPayment(ctx context.Context) error
}

func encodeJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeJSON treats a parse failure as absent data rather than an error.
func decodeJSON(logger *log.Logger, key, raw string, v any) bool {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		if logger != nil {
			logger.Warn("discarding malformed stored value", "key", key, "err", err)
		}
		return false
	}
	return true
}
