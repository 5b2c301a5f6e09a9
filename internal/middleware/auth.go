package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	apperrors "github.com/umalmyha/leads/internal/errors"
	"github.com/umalmyha/leads/internal/service"
)

const tokenQueryParam = "token"

// Authorize lets through only requests carrying token of the active admin session.
// Token is taken from Bearer Authorization header or token query parameter.
func Authorize(authSvc service.AuthService, sessionKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				token = c.QueryParam(tokenQueryParam)
			}

			if token == "" {
				return apperrors.NewAuthErr("missing session token", nil)
			}

			session, err := authSvc.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	hdrSplit := strings.Split(header, " ")
	if len(hdrSplit) != 2 || !strings.EqualFold(hdrSplit[0], "Bearer") {
		return ""
	}
	return hdrSplit[1]
}
