package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errUnsupportedFormValue = errors.New("form value must be a string, number or boolean")

// FormValue is raw user-entered text. JSON strings, numbers and booleans are all accepted as text.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler
func (v *FormValue) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*v = ""
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*v = FormValue(s)
	case '{', '[':
		return errUnsupportedFormValue
	default:
		*v = FormValue(raw)
	}
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form-encoded submissions
func (v *FormValue) UnmarshalParam(param string) error {
	*v = FormValue(param)
	return nil
}

// String returns raw text
func (v FormValue) String() string {
	return string(v)
}

// RequirementForm is raw public form submission
type RequirementForm struct {
	Name              FormValue `json:"name" form:"name" validate:"required,min=2"`
	Mobile            FormValue `json:"mobile" form:"mobile" validate:"required,mobile"`
	AltMobile         FormValue `json:"altMobile" form:"altMobile" validate:"omitempty,mobile"`
	Email             FormValue `json:"email" form:"email" validate:"required,contact_email"`
	Budget            FormValue `json:"budget" form:"budget" validate:"required,positive"`
	FlatSize          FormValue `json:"flatSize" form:"flatSize" validate:"required,positive"`
	CurrentLocation   FormValue `json:"currentLocation" form:"currentLocation" validate:"required"`
	PreferredLocation FormValue `json:"preferredLocation" form:"preferredLocation" validate:"required"`
	Direction         FormValue `json:"direction" form:"direction" validate:"omitempty,oneof=North South East West"`
	FloorPreference   FormValue `json:"floorPreference" form:"floorPreference" validate:"required,floor"`
	LookingFor        FormValue `json:"lookingFor" form:"lookingFor" validate:"omitempty,oneof=Gated Semi-gated Standalone"`
	Requirement       FormValue `json:"requirement" form:"requirement" validate:"required"`
	ChallengeID       FormValue `json:"challengeId" form:"challengeId"`
	ChallengeAnswer   FormValue `json:"captcha" form:"captcha"`
}
