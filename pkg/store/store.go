// Package store defines persistence for registrations, one-time download
// claims and uploaded responses.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound reports a missing registration or response.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyDownloaded reports a claim on a download that was already
	// taken.
	ErrAlreadyDownloaded = errors.New("store: already downloaded")
)

// Store is implemented by store/sqlite. Claims are atomic: of two concurrent
// claims on the same download exactly one succeeds.
type Store interface {
	CreateRespondent(ctx context.Context, reg Registration) (Registration, error)
	Respondent(ctx context.Context, applicationID string) (Registration, error)
	RespondentByMobile(ctx context.Context, mobile string) (Registration, error)
	SetDownloadOption(ctx context.Context, applicationID string, option DownloadOption) error

	ClaimFullDownload(ctx context.Context, applicationID string) error
	ReleaseFullDownload(ctx context.Context, applicationID string) error
	ClaimSectionDownload(ctx context.Context, applicationID, key string) error
	ReleaseSectionDownload(ctx context.Context, applicationID, key string) error
	DownloadedSections(ctx context.Context, applicationID string) ([]string, error)

	SaveResponse(ctx context.Context, resp Response) (Response, error)
	ResponseByCode(ctx context.Context, code string) (Response, error)
	MarkResponseVerified(ctx context.Context, code string) error

	Close() error
}
