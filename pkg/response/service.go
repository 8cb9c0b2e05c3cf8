package response

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/store"
)

// DefaultMaxSize caps uploaded documents.
const DefaultMaxSize = 10 << 20

var (
	// ErrNameMismatch reports an uploader name that differs from the
	// registration.
	ErrNameMismatch = errors.New("response: name does not match registration")

	// ErrApplicationMismatch reports a PDF generated for another application id.
	ErrApplicationMismatch = errors.New("response: document belongs to another application")

	// ErrTooLarge reports an upload above the configured size limit.
	ErrTooLarge = errors.New("response: document too large")

	// ErrInvalidVerificationCode reports a malformed or unknown code.
	ErrInvalidVerificationCode = errors.New("response: invalid verification code")
)

// Option customises a Service.
type Option func(*Service)

// WithNotifier overrides the log-only notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger attaches a zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCodeGenerator replaces uuid.NewString for verification codes.
func WithCodeGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newCode = fn
		}
	}
}

// WithMaxSize overrides DefaultMaxSize.
func WithMaxSize(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// Service handles uploads and verification of filled-in questionnaires.
type Service struct {
	store    store.Store
	notifier Notifier
	logger   *zap.Logger
	newCode  func() string
	maxSize  int64
}

// NewService constructs a Service backed by st.
func NewService(st store.Store, options ...Option) *Service {
	s := &Service{
		store:   st,
		logger:  zap.NewNop(),
		newCode: uuid.NewString,
		maxSize: DefaultMaxSize,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = LogNotifier(s.logger)
	}
	return s
}

// Upload is one submitted document.
type Upload struct {
	ApplicationID string
	Name          string
	Filename      string
	Body          io.Reader
}

// Submit checks the uploader, extracts answers and stores the document. The
// name must match the registration case-insensitively, and a PDF that
// carries an application id must carry the uploader's.
func (s *Service) Submit(ctx context.Context, up Upload) (store.Response, error) {
	if s.store == nil {
		return store.Response{}, errors.New("response: store is nil")
	}
	if err := questionnaire.ValidateApplicationID(up.ApplicationID); err != nil {
		return store.Response{}, fmt.Errorf("response: %w", err)
	}
	reg, err := s.store.Respondent(ctx, up.ApplicationID)
	if err != nil {
		return store.Response{}, fmt.Errorf("response: lookup %s: %w", up.ApplicationID, err)
	}
	if !strings.EqualFold(strings.TrimSpace(up.Name), strings.TrimSpace(reg.Name)) {
		s.logger.Warn("upload name mismatch", zap.String("application_id", up.ApplicationID))
		return store.Response{}, ErrNameMismatch
	}
	if up.Body == nil {
		return store.Response{}, fmt.Errorf("response: %w: empty upload", ErrNotPDF)
	}

	data, err := io.ReadAll(io.LimitReader(up.Body, s.maxSize+1))
	if err != nil {
		return store.Response{}, fmt.Errorf("response: read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return store.Response{}, ErrTooLarge
	}

	form, err := Extract(data)
	if err != nil {
		return store.Response{}, err
	}
	if form.ApplicationID != "" && form.ApplicationID != up.ApplicationID {
		return store.Response{}, fmt.Errorf("%w: document is for %s", ErrApplicationMismatch, form.ApplicationID)
	}

	saved, err := s.store.SaveResponse(ctx, store.Response{
		ApplicationID:    up.ApplicationID,
		VerificationCode: s.newCode(),
		Filename:         up.Filename,
		PDF:              data,
		Answers:          form.Answered(),
	})
	if err != nil {
		return store.Response{}, fmt.Errorf("response: save: %w", err)
	}

	s.logger.Info("response uploaded",
		zap.String("application_id", saved.ApplicationID),
		zap.Int("answers", len(saved.Answers)),
		zap.Int("bytes", len(data)),
	)
	if err := s.notifier.Notify(ctx, reg, saved); err != nil {
		s.logger.Error("verification notice failed", zap.String("application_id", saved.ApplicationID), zap.Error(err))
	}
	return saved, nil
}

// Verify marks the response holding code as verified.
func (s *Service) Verify(ctx context.Context, code string) error {
	if s.store == nil {
		return errors.New("response: store is nil")
	}
	if _, err := uuid.Parse(code); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidVerificationCode, code)
	}
	if err := s.store.MarkResponseVerified(ctx, code); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrInvalidVerificationCode, code)
		}
		return fmt.Errorf("response: verify: %w", err)
	}
	s.logger.Info("response verified", zap.String("verification_code", code))
	return nil
}
