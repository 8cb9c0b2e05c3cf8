package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/store"
)

const respondentColumns = `application_id, name, gender, mobile_number, email, state,
	place_of_residence, profession, specialization, download_option, created_at, full_downloaded`

// CreateRespondent validates reg, assigns a fresh application id and
// creation time, and inserts it.
func (s *Store) CreateRespondent(ctx context.Context, reg store.Registration) (store.Registration, error) {
	if err := reg.Validate(); err != nil {
		return store.Registration{}, err
	}

	reg.CreatedAt = s.now().UTC()
	reg.FullDownloaded = false
	reg.SectionsDownloaded = nil

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return store.Registration{}, err
		}
		if err := questionnaire.ValidateApplicationID(id); err != nil {
			return store.Registration{}, fmt.Errorf("sqlite store: %w", err)
		}

		res, err := s.db.ExecContext(ctx, `INSERT INTO respondents (`+respondentColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
			ON CONFLICT(application_id) DO NOTHING`,
			id, reg.Name, reg.Gender, reg.MobileNumber, reg.Email, reg.State,
			reg.PlaceOfResidence, reg.Profession, reg.Specialization, string(reg.DownloadOption),
			formatTime(reg.CreatedAt),
		)
		if err != nil {
			return store.Registration{}, fmt.Errorf("sqlite store: insert respondent: %w", err)
		}
		if inserted, _ := res.RowsAffected(); inserted == 1 {
			reg.ApplicationID = id
			return reg, nil
		}
	}
	return store.Registration{}, fmt.Errorf("sqlite store: no free application id after %d attempts", maxIDAttempts)
}

// Respondent loads a registration with its downloaded sections.
func (s *Store) Respondent(ctx context.Context, applicationID string) (store.Registration, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+respondentColumns+` FROM respondents WHERE application_id = ?`, applicationID)
	reg, err := scanRespondent(row)
	if err != nil {
		return store.Registration{}, err
	}
	reg.SectionsDownloaded, err = s.DownloadedSections(ctx, applicationID)
	if err != nil {
		return store.Registration{}, err
	}
	return reg, nil
}

// RespondentByMobile returns the earliest registration made with mobile.
func (s *Store) RespondentByMobile(ctx context.Context, mobile string) (store.Registration, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT application_id FROM respondents WHERE mobile_number = ? ORDER BY created_at, application_id LIMIT 1`,
		mobile,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Registration{}, fmt.Errorf("sqlite store: mobile %q: %w", mobile, store.ErrNotFound)
	}
	if err != nil {
		return store.Registration{}, fmt.Errorf("sqlite store: lookup mobile: %w", err)
	}
	return s.Respondent(ctx, id)
}

// SetDownloadOption records the respondent's chosen download path.
func (s *Store) SetDownloadOption(ctx context.Context, applicationID string, option store.DownloadOption) error {
	switch option {
	case store.DownloadFull, store.DownloadSection:
	default:
		return fmt.Errorf("sqlite store: unknown download option %q", option)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE respondents SET download_option = ? WHERE application_id = ?`, string(option), applicationID)
	if err != nil {
		return fmt.Errorf("sqlite store: set download option: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sqlite store: respondent %q: %w", applicationID, store.ErrNotFound)
	}
	return nil
}

func scanRespondent(row *sql.Row) (store.Registration, error) {
	var (
		reg     store.Registration
		option  string
		created string
		full    int
	)
	err := row.Scan(
		&reg.ApplicationID, &reg.Name, &reg.Gender, &reg.MobileNumber, &reg.Email, &reg.State,
		&reg.PlaceOfResidence, &reg.Profession, &reg.Specialization, &option, &created, &full,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Registration{}, store.ErrNotFound
	}
	if err != nil {
		return store.Registration{}, fmt.Errorf("sqlite store: scan respondent: %w", err)
	}
	reg.DownloadOption = store.DownloadOption(option)
	reg.FullDownloaded = full != 0
	reg.CreatedAt, err = parseTime(created)
	if err != nil {
		return store.Registration{}, err
	}
	return reg, nil
}

func (s *Store) exists(ctx context.Context, applicationID string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM respondents WHERE application_id = ?`, applicationID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite store: respondent %q: %w", applicationID, store.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("sqlite store: lookup respondent: %w", err)
	}
	return nil
}
