package validation

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/umalmyha/leads/internal/errors"
	"github.com/umalmyha/leads/internal/model"
)

var requirementMessages = map[string]string{
	"name":              "Name must be at least 2 characters",
	"mobile":            "Enter a valid 10-digit Indian mobile number",
	"altMobile":         "Enter a valid 10-digit mobile number",
	"email":             "Enter a valid email address",
	"budget":            "Please enter a valid positive budget amount",
	"flatSize":          "Enter a valid positive size",
	"currentLocation":   "Current location is required",
	"preferredLocation": "Preferred location is required",
	"direction":         "Direction must be one of North, South, East, West",
	"floorPreference":   "Enter a valid positive integer floor number",
	"lookingFor":        "Looking for must be one of Gated, Semi-gated, Standalone",
	"requirement":       "Please describe your requirement",
}

// RequirementValidator checks public form submissions field by field
type RequirementValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// NewRequirementValidator builds RequirementValidator
func NewRequirementValidator(v *validator.Validate, trans ut.Translator) *RequirementValidator {
	return &RequirementValidator{validator: v, translator: trans}
}

// Validate returns errors keyed by offending json field names, nil if form is valid
func (v *RequirementValidator) Validate(form *model.RequirementForm) (apperrors.FieldErrors, error) {
	err := v.validator.Struct(form)
	if err == nil {
		return nil, nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, err
	}

	fieldErrs := make(apperrors.FieldErrors, len(ve))
	for _, e := range ve {
		msg, ok := requirementMessages[e.Field()]
		if !ok {
			msg = e.Translate(v.translator)
		}
		fieldErrs[e.Field()] = msg
	}
	return fieldErrs, nil
}

// Normalize converts valid form into requirement, generated fields are left blank
func Normalize(form *model.RequirementForm) *model.Requirement {
	budget, _ := ParseNumber(form.Budget.String())
	flatSize, _ := ParseNumber(form.FlatSize.String())
	floor, _ := ParseFloor(form.FloorPreference.String())

	direction := model.Direction(form.Direction)
	if direction == "" {
		direction = model.DirectionNorth
	}

	lookingFor := model.LookingFor(form.LookingFor)
	if lookingFor == "" {
		lookingFor = model.LookingForGated
	}

	var altMobile *string
	if form.AltMobile != "" {
		s := form.AltMobile.String()
		altMobile = &s
	}

	return &model.Requirement{
		Name:              form.Name.String(),
		Mobile:            form.Mobile.String(),
		AltMobile:         altMobile,
		Email:             form.Email.String(),
		Budget:            budget,
		FlatSize:          flatSize,
		CurrentLocation:   form.CurrentLocation.String(),
		PreferredLocation: form.PreferredLocation.String(),
		Direction:         direction,
		FloorPreference:   floor,
		LookingFor:        lookingFor,
		Requirement:       form.Requirement.String(),
	}
}
