package response

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-questionnaire/pkg/store"
)

// Notifier delivers a verification code to the respondent.
type Notifier interface {
	Notify(ctx context.Context, reg store.Registration, resp store.Response) error
}

// NotifierFunc adapts plain functions to the Notifier interface.
type NotifierFunc func(ctx context.Context, reg store.Registration, resp store.Response) error

// Notify executes the wrapped function when non-nil.
func (fn NotifierFunc) Notify(ctx context.Context, reg store.Registration, resp store.Response) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, reg, resp)
}

// LogNotifier writes the verification code to logger instead of sending it.
func LogNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NotifierFunc(func(_ context.Context, reg store.Registration, resp store.Response) error {
		logger.Info("verification code issued",
			zap.String("application_id", reg.ApplicationID),
			zap.String("email", reg.Email),
			zap.String("verification_code", resp.VerificationCode),
		)
		return nil
	})
}
