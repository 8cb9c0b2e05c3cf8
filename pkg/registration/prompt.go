// Package registration collects respondent registrations interactively and
// hands them to a store.
package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/store"
)

var downloadOptions = []string{"Full Questionnaire", "Section-wise"}

// Option configures a Prompter.
type Option func(*Prompter)

// WithPromptDriver overrides the survey-backed driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithSkipConfirm submits without asking for a final confirmation.
func WithSkipConfirm() Option {
	return func(p *Prompter) {
		p.skipConfirm = true
	}
}

// Prompter walks a respondent through the registration form.
type Prompter struct {
	driver      PromptDriver
	skipConfirm bool
}

// New constructs a Prompter. Without WithPromptDriver it prompts on the
// process terminal.
func New(options ...Option) *Prompter {
	p := &Prompter{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(nil)
	}
	return p
}

// Collect asks for every registration field and returns the validated,
// unsaved registration.
func (p *Prompter) Collect(ctx context.Context) (store.Registration, error) {
	var (
		reg store.Registration
		err error
	)

	if reg.Name, err = p.text(ctx, "Name (As in Aadhaar Card)", required("name")); err != nil {
		return store.Registration{}, err
	}
	if reg.Gender, err = p.choose(ctx, "Gender", questionnaire.Genders); err != nil {
		return store.Registration{}, err
	}
	if reg.MobileNumber, err = p.text(ctx, "Mobile Number", store.ValidateMobile); err != nil {
		return store.Registration{}, err
	}
	if reg.Email, err = p.text(ctx, "Email ID (optional)", optionalEmail); err != nil {
		return store.Registration{}, err
	}
	if reg.State, err = p.text(ctx, "State/UT", required("state")); err != nil {
		return store.Registration{}, err
	}
	if reg.PlaceOfResidence, err = p.text(ctx, "Place of Residence", required("place of residence")); err != nil {
		return store.Registration{}, err
	}
	if reg.Profession, err = p.choose(ctx, "Respondent Type (Profession)", questionnaire.Professions); err != nil {
		return store.Registration{}, err
	}
	if reg.Specialization, err = p.choose(ctx, "Area of Specialization/Interest", questionnaire.Specializations); err != nil {
		return store.Registration{}, err
	}
	option, err := p.choose(ctx, "Download option", downloadOptions)
	if err != nil {
		return store.Registration{}, err
	}
	reg.DownloadOption = store.DownloadFull
	if option == downloadOptions[1] {
		reg.DownloadOption = store.DownloadSection
	}

	if err := reg.Validate(); err != nil {
		return store.Registration{}, fmt.Errorf("registration: %w", err)
	}

	if !p.skipConfirm {
		ok, err := p.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Register %s (%s, %s)?", reg.Name, reg.Profession, reg.State),
			Default: true,
		})
		if err != nil {
			return store.Registration{}, err
		}
		if !ok {
			return store.Registration{}, ErrDeclined
		}
	}
	return reg, nil
}

// Register collects a registration, saves it and tells the respondent
// their application id.
func (p *Prompter) Register(ctx context.Context, st store.Store) (store.Registration, error) {
	if st == nil {
		return store.Registration{}, errors.New("registration: store is nil")
	}
	reg, err := p.Collect(ctx)
	if err != nil {
		return store.Registration{}, err
	}
	saved, err := st.CreateRespondent(ctx, reg)
	if err != nil {
		return store.Registration{}, fmt.Errorf("registration: save: %w", err)
	}
	msg := fmt.Sprintf("Registration successful. Your application ID is %s.", saved.ApplicationID)
	if err := p.driver.Info(ctx, msg); err != nil {
		return store.Registration{}, err
	}
	return saved, nil
}

func (p *Prompter) text(ctx context.Context, message string, validate func(string) error) (string, error) {
	value, err := p.driver.Input(ctx, InputConfig{
		Message: message,
		Validator: func(s string) error {
			return validate(strings.TrimSpace(s))
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (p *Prompter) choose(ctx context.Context, message string, options []string) (string, error) {
	idx, err := p.driver.Select(ctx, SelectConfig{
		Message:  message,
		Options:  options,
		PageSize: len(options),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("registration: %s: no option selected", strings.ToLower(message))
	}
	return options[idx], nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func optionalEmail(s string) error {
	if s != "" && !strings.Contains(s, "@") {
		return fmt.Errorf("invalid email %q", s)
	}
	return nil
}
