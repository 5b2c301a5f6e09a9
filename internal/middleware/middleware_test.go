package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/leads/internal/auth"
	"github.com/umalmyha/leads/internal/captcha"
	apperrors "github.com/umalmyha/leads/internal/errors"
	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/repository"
	"github.com/umalmyha/leads/internal/service"
	"github.com/umalmyha/leads/internal/storage/kv"
)

const testSessionKey = "session"

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	secret := []byte("test-secret")
	store := kv.NewMemoryStore()

	issuer := auth.NewJwtIssuer("leads", secret, 0)
	sessionRps := repository.NewKvSessionRepository(store, repository.DefaultSessionKey)
	authSvc := service.NewAuthService(
		sessionRps,
		captcha.NewService(repository.NewKvChallengeRepository(store), time.Minute),
		auth.NewStaticVerifier("admin@company.com", "12345"),
		issuer,
		auth.NewJwtValidator("leads", secret),
		0,
		logger,
	)

	token, err := issuer.Sign("admin@company.com", time.Now())
	require.NoError(t, err)
	require.NoError(t, sessionRps.Save(ctx, &model.Session{Email: "admin@company.com", Token: token, CreatedAt: time.Now()}))

	e := echo.New()
	next := func(c echo.Context) error {
		session, ok := c.Get(testSessionKey).(*model.Session)
		require.True(t, ok, "session must be put into context")
		return c.String(http.StatusOK, session.Email)
	}
	handler := Authorize(authSvc, testSessionKey)(next)

	t.Log("bearer token of active session")
	{
		req := httptest.NewRequest(http.MethodGet, "/api/requirements", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		require.Equal(t, "admin@company.com", rec.Body.String())
	}

	t.Log("token in query")
	{
		req := httptest.NewRequest(http.MethodGet, "/api/requirements/events?token="+token, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
	}

	t.Log("missing and malformed header")
	{
		for _, hdr := range []string{"", token, "Basic " + token, "Bearer"} {
			req := httptest.NewRequest(http.MethodGet, "/api/requirements", nil)
			req.Header.Set(echo.HeaderAuthorization, hdr)

			err := handler(e.NewContext(req, httptest.NewRecorder()))
			var ae *apperrors.AuthErr
			require.ErrorAs(t, err, &ae, "header %q must be rejected", hdr)
		}
	}

	t.Log("token after logout")
	{
		require.NoError(t, authSvc.Logout(ctx))

		req := httptest.NewRequest(http.MethodGet, "/api/requirements", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

		err := handler(e.NewContext(req, httptest.NewRecorder()))
		var ae *apperrors.AuthErr
		require.ErrorAs(t, err, &ae)
	}
}

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "/ping", entry.Data["uri"])
	require.Equal(t, http.StatusNoContent, entry.Data["status"])
}
