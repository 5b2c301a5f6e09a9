package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/leads/internal/errors"
	"github.com/umalmyha/leads/internal/validation"
)

type errorMessage struct {
	Message string `json:"message"`
}

type confirmationRequired struct {
	Message string `json:"message"`
	Confirm string `json:"confirm"`
}

// HTTPErrorHandler renders application errors with their status codes, server side failures are logged
func HTTPErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := errorResponse(err)
		if code >= http.StatusInternalServerError {
			logger.WithFields(logrus.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
				"status": code,
			}).WithError(err).Error("request failed")
		}

		var respErr error
		if c.Request().Method == http.MethodHead {
			respErr = c.NoContent(code)
		} else {
			respErr = c.JSON(code, body)
		}

		if respErr != nil {
			logger.WithError(respErr).Error("failed to send error response")
		}
	}
}

func errorResponse(err error) (int, any) {
	var (
		validationErr   *apperrors.ValidationErr
		payloadErr      *validation.PayloadError
		authErr         *apperrors.AuthErr
		submissionErr   *apperrors.SubmissionErr
		businessErr     *apperrors.BusinessErr
		confirmationErr *apperrors.ConfirmationErr
		httpErr         *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr
	case errors.As(err, &payloadErr):
		return http.StatusBadRequest, payloadErr
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, authErr
	case errors.As(err, &submissionErr):
		return http.StatusServiceUnavailable, submissionErr
	case errors.As(err, &businessErr):
		return http.StatusConflict, businessErr
	case errors.As(err, &confirmationErr):
		return http.StatusPreconditionRequired, &confirmationRequired{Message: confirmationErr.Prompt(), Confirm: "confirm=true"}
	case errors.Is(err, apperrors.ErrNothingToExport):
		return http.StatusUnprocessableEntity, &errorMessage{Message: err.Error()}
	case errors.As(err, &httpErr):
		if httpErr.Internal != nil {
			return httpErr.Code, &errorMessage{Message: http.StatusText(httpErr.Code)}
		}
		return httpErr.Code, httpErr
	default:
		return http.StatusInternalServerError, &errorMessage{Message: http.StatusText(http.StatusInternalServerError)}
	}
}
