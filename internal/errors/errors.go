package errors

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/umalmyha/leads/internal/model"
)

// ErrNothingToExport is raised on export of empty requirements selection
var ErrNothingToExport = errors.New("No data to export")

// BusinessErr is raised when operation violates business rule
type BusinessErr struct {
	target  string
	message string
}

func (e *BusinessErr) Error() string {
	return e.message
}

// Target returns name of the entity or field rule belongs to
func (e *BusinessErr) Target() string {
	return e.target
}

// MarshalJSON implements json.Marshaler
func (e *BusinessErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Target: e.target, Message: e.message})
}

// NewBusinessErr builds new BusinessErr
func NewBusinessErr(target string, msg string) error {
	return &BusinessErr{
		target:  target,
		message: msg,
	}
}

// FieldErrors maps field name to human-readable message
type FieldErrors map[string]string

// Fields returns sorted field names
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValidationErr is raised when submitted form is invalid. It carries fresh challenge for the next attempt.
type ValidationErr struct {
	Fields    FieldErrors
	Challenge *model.Challenge
}

func (e *ValidationErr) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		msgs = append(msgs, e.Fields[f])
	}
	return "please fix the highlighted errors: " + strings.Join(msgs, "; ")
}

// MarshalJSON implements json.Marshaler
func (e *ValidationErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Message   string           `json:"message"`
		Errors    FieldErrors      `json:"errors"`
		Challenge *model.Challenge `json:"challenge,omitempty"`
	}{
		Message:   "Please fix the highlighted errors",
		Errors:    e.Fields,
		Challenge: e.Challenge,
	})
}

// AuthErr is raised on invalid credentials or wrong challenge answer during login
type AuthErr struct {
	message   string
	Challenge *model.Challenge
}

// NewAuthErr builds new AuthErr
func NewAuthErr(msg string, challenge *model.Challenge) *AuthErr {
	return &AuthErr{message: msg, Challenge: challenge}
}

func (e *AuthErr) Error() string {
	return e.message
}

// MarshalJSON implements json.Marshaler
func (e *AuthErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Message   string           `json:"message"`
		Challenge *model.Challenge `json:"challenge,omitempty"`
	}{Message: e.message, Challenge: e.Challenge})
}

// SubmissionErr is raised when store write failed, client keeps form state and retries
type SubmissionErr struct {
	cause     error
	Challenge *model.Challenge
}

// NewSubmissionErr builds new SubmissionErr
func NewSubmissionErr(cause error, challenge *model.Challenge) *SubmissionErr {
	return &SubmissionErr{cause: cause, Challenge: challenge}
}

func (e *SubmissionErr) Error() string {
	return "failed to submit requirement - " + e.cause.Error()
}

func (e *SubmissionErr) Unwrap() error {
	return e.cause
}

// MarshalJSON implements json.Marshaler
func (e *SubmissionErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Message   string           `json:"message"`
		Challenge *model.Challenge `json:"challenge,omitempty"`
	}{Message: "Submission failed, please try again", Challenge: e.Challenge})
}

// ConfirmationErr is raised when destructive action is requested without explicit confirmation
type ConfirmationErr struct {
	prompt string
}

// NewConfirmationErr builds new ConfirmationErr
func NewConfirmationErr(prompt string) *ConfirmationErr {
	return &ConfirmationErr{prompt: prompt}
}

func (e *ConfirmationErr) Error() string {
	return e.prompt
}

// Prompt returns question admin must confirm
func (e *ConfirmationErr) Prompt() string {
	return e.prompt
}
