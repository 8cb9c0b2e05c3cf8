package store

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// DownloadOption records which download path a respondent picked.
type DownloadOption string

const (
	DownloadFull    DownloadOption = "FULL"
	DownloadSection DownloadOption = "SECTION"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Registration is a respondent record as captured at sign-up.
type Registration struct {
	ApplicationID      string         `json:"applicationId"`
	Name               string         `json:"name"`
	Gender             string         `json:"gender"`
	MobileNumber       string         `json:"mobileNumber"`
	Email              string         `json:"email,omitempty"`
	State              string         `json:"state"`
	PlaceOfResidence   string         `json:"placeOfResidence"`
	Profession         string         `json:"profession"`
	Specialization     string         `json:"specialization"`
	DownloadOption     DownloadOption `json:"downloadOption,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	FullDownloaded     bool           `json:"fullDownloaded"`
	SectionsDownloaded []string       `json:"sectionsDownloaded,omitempty"`
}

// ValidateMobile checks a mobile number: 10 to 15 digits with an optional
// leading plus.
func ValidateMobile(mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return fmt.Errorf("store: invalid mobile number %q", mobile)
	}
	return nil
}

// Validate checks the fields a registration form collects. The application
// id and timestamps are assigned by the store and not checked here.
func (r Registration) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, errors.New("store: name is required"))
	}
	if !questionnaire.IsGender(r.Gender) {
		errs = append(errs, fmt.Errorf("store: unknown gender %q", r.Gender))
	}
	if err := ValidateMobile(r.MobileNumber); err != nil {
		errs = append(errs, err)
	}
	if r.Email != "" && !strings.Contains(r.Email, "@") {
		errs = append(errs, fmt.Errorf("store: invalid email %q", r.Email))
	}
	if strings.TrimSpace(r.State) == "" {
		errs = append(errs, errors.New("store: state is required"))
	}
	if strings.TrimSpace(r.PlaceOfResidence) == "" {
		errs = append(errs, errors.New("store: place of residence is required"))
	}
	if !questionnaire.IsProfession(r.Profession) {
		errs = append(errs, fmt.Errorf("store: unknown profession %q", r.Profession))
	}
	if !questionnaire.IsSpecialization(r.Specialization) {
		errs = append(errs, fmt.Errorf("store: unknown specialization %q", r.Specialization))
	}
	return errors.Join(errs...)
}

// Respondent projects the registration onto the header data printed in
// documents.
func (r Registration) Respondent() questionnaire.Respondent {
	return questionnaire.Respondent{
		Name:           r.Name,
		Profession:     r.Profession,
		Specialization: r.Specialization,
		State:          r.State,
		RegisteredAt:   r.CreatedAt,
		ApplicationID:  r.ApplicationID,
	}
}

// HasDownloaded reports whether the section key was already claimed.
func (r Registration) HasDownloaded(key string) bool {
	return slices.Contains(r.SectionsDownloaded, key)
}

// Response is an uploaded, filled-in questionnaire.
type Response struct {
	ID               int64             `json:"id"`
	ApplicationID    string            `json:"applicationId"`
	VerificationCode string            `json:"verificationCode"`
	Filename         string            `json:"filename"`
	PDF              []byte            `json:"-"`
	Answers          map[string]string `json:"answers,omitempty"`
	UploadedAt       time.Time         `json:"uploadedAt"`
	Verified         bool              `json:"verified"`
}
