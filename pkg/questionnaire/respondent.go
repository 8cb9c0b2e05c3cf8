package questionnaire

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ApplicationIDLength is the number of ASCII digits in an application id.
const ApplicationIDLength = 8

// DateLayout formats registration dates in document headers (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// ErrInvalidApplicationID reports an application id that is not exactly
// eight ASCII digits.
var ErrInvalidApplicationID = errors.New("questionnaire: application id must be 8 digits")

// Respondent is the read-only view of a registration that documents are
// rendered for. Profession and Specialization hold display labels.
type Respondent struct {
	Name           string    `json:"name" yaml:"name"`
	Profession     string    `json:"profession" yaml:"profession"`
	Specialization string    `json:"specialization" yaml:"specialization"`
	State          string    `json:"state" yaml:"state"`
	RegisteredAt   time.Time `json:"registeredAt" yaml:"registeredAt"`
	ApplicationID  string    `json:"applicationId" yaml:"applicationId"`
}

// ValidateApplicationID checks the 8-digit application id invariant.
func ValidateApplicationID(id string) error {
	if len(id) != ApplicationIDLength {
		return fmt.Errorf("%w: got %q", ErrInvalidApplicationID, id)
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return fmt.Errorf("%w: got %q", ErrInvalidApplicationID, id)
		}
	}
	return nil
}

// Validate reports whether the respondent can be printed in a header.
func (r Respondent) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("questionnaire: respondent name is required")
	}
	return ValidateApplicationID(r.ApplicationID)
}

// Summary renders the respondent line printed below the document title.
func (r Respondent) Summary() string {
	return fmt.Sprintf(
		"Name: %s | Profession: %s | Specialization: %s | State: %s | Date: %s",
		r.Name, r.Profession, r.Specialization, r.State, r.RegisteredAt.Format(DateLayout),
	)
}

// ApplicationLine renders the "Application ID: <id>" header line.
func (r Respondent) ApplicationLine() string {
	return "Application ID: " + r.ApplicationID
}

// Sanitized returns a copy with markup stripped from every free-text field.
func (r Respondent) Sanitized() Respondent {
	out := r
	out.Name = SanitizeText(r.Name)
	out.Profession = SanitizeText(r.Profession)
	out.Specialization = SanitizeText(r.Specialization)
	out.State = SanitizeText(r.State)
	return out
}
