package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"
)

var mobileRegexp = regexp.MustCompile(`^[6-9][0-9]{9}$`)
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError is raised when request payload doesn't pass validation
type PayloadError struct {
	violations []violation
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for _, err := range e.violations {
		buff.WriteString(err.Message)
		buff.WriteString("\n")
	}

	return buff.String()
}

// Violation adds violation to the error
func (e *PayloadError) Violation(v violation) {
	e.violations = append(e.violations, v)
}

// MarshalJSON implements json.Marshaler
func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// New builds validator with custom tags registered and english translator for it
func New() (*validator.Validate, ut.Translator, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	customs := map[string]validator.Func{
		"mobile":        isMobile,
		"contact_email": isContactEmail,
		"positive":      isPositiveNumber,
		"floor":         isFloor,
	}
	for tag, fn := range customs {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s validation - %w", tag, err)
		}
	}

	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, nil, errors.New("missing en translations")
	}

	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations - %w", err)
	}

	return v, trans, nil
}

// EchoValidator adapts validator to echo.Validator
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds new EchoValidator
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

// Validate validates struct and returns PayloadError on violations
func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]violation, 0)}
	for _, e := range ve {
		pldErr.Violation(violation{
			Field:   e.Field(),
			Message: e.Translate(v.translator),
		})
	}
	return pldErr
}

func isMobile(fl validator.FieldLevel) bool {
	return mobileRegexp.MatchString(fl.Field().String())
}

func isContactEmail(fl validator.FieldLevel) bool {
	return emailRegexp.MatchString(fl.Field().String())
}

func isPositiveNumber(fl validator.FieldLevel) bool {
	n, ok := ParseNumber(fl.Field().String())
	return ok && n > 0
}

func isFloor(fl validator.FieldLevel) bool {
	_, ok := ParseFloor(fl.Field().String())
	return ok
}

// ParseNumber parses finite decimal number
func ParseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ParseFloor parses non-negative whole floor number, any notation of it is accepted ("4", "4.0", "1e1")
func ParseFloor(s string) (int, bool) {
	n, ok := ParseNumber(s)
	if !ok || n < 0 || n > math.MaxInt32 || n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}
