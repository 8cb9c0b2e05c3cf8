package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-questionnaire/pkg/store"
)

// SaveResponse stores an uploaded PDF. The respondent must exist and the
// verification code must be set and unused.
func (s *Store) SaveResponse(ctx context.Context, resp store.Response) (store.Response, error) {
	if strings.TrimSpace(resp.VerificationCode) == "" {
		return store.Response{}, errors.New("sqlite store: verification code is required")
	}
	if len(resp.PDF) == 0 {
		return store.Response{}, errors.New("sqlite store: response document is empty")
	}
	if err := s.exists(ctx, resp.ApplicationID); err != nil {
		return store.Response{}, err
	}

	answers := resp.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	encoded, err := json.Marshal(answers)
	if err != nil {
		return store.Response{}, fmt.Errorf("sqlite store: encode answers: %w", err)
	}

	resp.UploadedAt = s.now().UTC()
	resp.Verified = false
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (application_id, verification_code, filename, pdf, answers, uploaded_at, verified)
		VALUES (?, ?, ?, ?, ?, ?, 0)`,
		resp.ApplicationID, resp.VerificationCode, resp.Filename, resp.PDF, string(encoded), formatTime(resp.UploadedAt),
	)
	if err != nil {
		return store.Response{}, fmt.Errorf("sqlite store: insert response: %w", err)
	}
	resp.ID, err = res.LastInsertId()
	if err != nil {
		return store.Response{}, fmt.Errorf("sqlite store: response id: %w", err)
	}
	return resp, nil
}

// ResponseByCode loads a response by its verification code.
func (s *Store) ResponseByCode(ctx context.Context, code string) (store.Response, error) {
	var (
		resp     store.Response
		answers  string
		uploaded string
		verified int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, application_id, verification_code, filename, pdf, answers, uploaded_at, verified
		FROM responses WHERE verification_code = ?`,
		code,
	).Scan(&resp.ID, &resp.ApplicationID, &resp.VerificationCode, &resp.Filename, &resp.PDF, &answers, &uploaded, &verified)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Response{}, fmt.Errorf("sqlite store: response %q: %w", code, store.ErrNotFound)
	}
	if err != nil {
		return store.Response{}, fmt.Errorf("sqlite store: load response: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &resp.Answers); err != nil {
		return store.Response{}, fmt.Errorf("sqlite store: decode answers: %w", err)
	}
	resp.Verified = verified != 0
	resp.UploadedAt, err = parseTime(uploaded)
	if err != nil {
		return store.Response{}, err
	}
	return resp, nil
}

// MarkResponseVerified sets the verified flag. Verifying twice is not an
// error.
func (s *Store) MarkResponseVerified(ctx context.Context, code string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE responses SET verified = 1 WHERE verification_code = ?`, code)
	if err != nil {
		return fmt.Errorf("sqlite store: verify response: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sqlite store: response %q: %w", code, store.ErrNotFound)
	}
	return nil
}
