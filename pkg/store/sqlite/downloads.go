package sqlite

import (
	"context"
	"fmt"

	"github.com/goliatone/go-questionnaire/pkg/store"
)

// ClaimFullDownload flips the full-download flag if it is still clear.
func (s *Store) ClaimFullDownload(ctx context.Context, applicationID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE respondents SET full_downloaded = 1 WHERE application_id = ? AND full_downloaded = 0`,
		applicationID,
	)
	if err != nil {
		return fmt.Errorf("sqlite store: claim full download: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}
	if err := s.exists(ctx, applicationID); err != nil {
		return err
	}
	return fmt.Errorf("sqlite store: full questionnaire for %q: %w", applicationID, store.ErrAlreadyDownloaded)
}

// ReleaseFullDownload clears the flag after a failed delivery.
func (s *Store) ReleaseFullDownload(ctx context.Context, applicationID string) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE respondents SET full_downloaded = 0 WHERE application_id = ?`,
		applicationID,
	); err != nil {
		return fmt.Errorf("sqlite store: release full download: %w", err)
	}
	return nil
}

// ClaimSectionDownload records key as downloaded unless it already is.
func (s *Store) ClaimSectionDownload(ctx context.Context, applicationID, key string) error {
	if err := s.exists(ctx, applicationID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO section_downloads (application_id, section_key, downloaded_at) VALUES (?, ?, ?)
		ON CONFLICT(application_id, section_key) DO NOTHING`,
		applicationID, key, formatTime(s.now()),
	)
	if err != nil {
		return fmt.Errorf("sqlite store: claim section download: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sqlite store: section %q for %q: %w", key, applicationID, store.ErrAlreadyDownloaded)
	}
	return nil
}

// ReleaseSectionDownload forgets a section claim.
func (s *Store) ReleaseSectionDownload(ctx context.Context, applicationID, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM section_downloads WHERE application_id = ? AND section_key = ?`,
		applicationID, key,
	); err != nil {
		return fmt.Errorf("sqlite store: release section download: %w", err)
	}
	return nil
}

// DownloadedSections lists claimed section keys in claim order.
func (s *Store) DownloadedSections(ctx context.Context, applicationID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT section_key FROM section_downloads WHERE application_id = ? ORDER BY downloaded_at, rowid`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: list sections: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("sqlite store: scan section: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite store: list sections: %w", err)
	}
	return keys, nil
}
