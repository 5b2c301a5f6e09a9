package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/leads/internal/auth"
	"github.com/umalmyha/leads/internal/captcha"
	apperrors "github.com/umalmyha/leads/internal/errors"
	"github.com/umalmyha/leads/internal/middleware"
	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/notify"
	"github.com/umalmyha/leads/internal/repository"
	"github.com/umalmyha/leads/internal/service"
	"github.com/umalmyha/leads/internal/storage/kv"
	"github.com/umalmyha/leads/internal/validation"
	"github.com/umalmyha/leads/pkg/db/transactor"
)

const (
	testAdminEmail    = "admin@company.com"
	testAdminPassword = "12345"
)

type challengeResponse struct {
	ID   string `json:"id"`
	Num1 int    `json:"num1"`
	Num2 int    `json:"num2"`
}

type handlersTestSuite struct {
	suite.Suite
	e              *echo.Echo
	requirementRps repository.RequirementRepository
}

func (s *handlersTestSuite) SetupTest() {
	t := s.T()
	logger, _ := test.NewNullLogger()
	store := kv.NewMemoryStore()
	secret := []byte("test-secret")

	v, trans, err := validation.New()
	require.NoError(t, err, "failed to build validator")

	s.requirementRps = repository.NewKvRequirementRepository(store, repository.DefaultRequirementsKey)
	captchaSvc := captcha.NewService(repository.NewKvChallengeRepository(store), time.Minute)
	requirementSvc := service.NewRequirementService(
		transactor.NewNopTransactor(),
		s.requirementRps,
		validation.NewRequirementValidator(v, trans),
		captchaSvc,
		notify.Nop(),
		logger,
		service.RequirementOptions{ExportPrefix: "ilandspaces_leads"},
	)
	authSvc := service.NewAuthService(
		repository.NewKvSessionRepository(store, repository.DefaultSessionKey),
		captchaSvc,
		auth.NewStaticVerifier(testAdminEmail, testAdminPassword),
		auth.NewJwtIssuer("leads", secret, 0),
		auth.NewJwtValidator("leads", secret),
		0,
		logger,
	)

	challengeHandler := NewChallengeHTTPHandler(captchaSvc)
	requirementHandler := NewRequirementHTTPHandler(requirementSvc)
	sessionHandler := NewSessionHTTPHandler(authSvc)

	e := echo.New()
	e.Validator = validation.Echo(v, trans)
	e.HTTPErrorHandler = HTTPErrorHandler(logger)

	api := e.Group("/api")
	api.GET("/challenge", challengeHandler.Issue)
	api.POST("/requirements", requirementHandler.Submit)
	api.POST("/session", sessionHandler.Login)

	authorizeMw := middleware.Authorize(authSvc, SessionContextKey)
	api.GET("/requirements", requirementHandler.GetAll, authorizeMw)
	api.GET("/requirements/export", requirementHandler.Export, authorizeMw)
	api.PATCH("/requirements/:id", requirementHandler.SetStatus, authorizeMw)
	api.DELETE("/requirements/:id", requirementHandler.DeleteByID, authorizeMw)
	api.GET("/session", sessionHandler.Current, authorizeMw)
	api.DELETE("/session", sessionHandler.Logout, authorizeMw)

	s.e = e
}

func (s *handlersTestSuite) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlersTestSuite) challenge() challengeResponse {
	t := s.T()
	rec := s.do(http.MethodGet, "/api/challenge", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var c challengeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	require.NotEmpty(t, c.ID)
	return c
}

func (s *handlersTestSuite) login() string {
	t := s.T()
	c := s.challenge()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"challengeId":%q,"captcha":"%d"}`, testAdminEmail, testAdminPassword, c.ID, c.Num1+c.Num2)

	rec := s.do(http.MethodPost, "/api/session", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session model.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func (s *handlersTestSuite) submit(name string, budget int) *httptest.ResponseRecorder {
	c := s.challenge()
	body := fmt.Sprintf(`{
		"name": %q,
		"mobile": "9876543210",
		"email": "ann@x.com",
		"budget": %d,
		"flatSize": 1200,
		"currentLocation": "HSR",
		"preferredLocation": "Sarjapur",
		"floorPreference": "4",
		"lookingFor": "Gated",
		"requirement": "balcony",
		"challengeId": %q,
		"captcha": %d
	}`, name, budget, c.ID, c.Num1+c.Num2)
	return s.do(http.MethodPost, "/api/requirements", body, "")
}

func (s *handlersTestSuite) TestSubmit() {
	t := s.T()

	t.Log("valid submission is created as new lead")
	{
		rec := s.submit("Ann Lee", 7500000)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var req model.Requirement
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
		require.NotEmpty(t, req.ID)
		require.Equal(t, model.StatusNew, req.Status)
		require.Equal(t, 7500000.0, req.Budget)
	}

	t.Log("invalid submission gets field errors and fresh challenge")
	{
		rec := s.do(http.MethodPost, "/api/requirements", `{"name":"A","mobile":"12345"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			Errors    map[string]string `json:"errors"`
			Challenge *challengeResponse `json:"challenge"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Contains(t, body.Errors, "name")
		require.Contains(t, body.Errors, "mobile")
		require.Contains(t, body.Errors, "captcha")
		require.NotNil(t, body.Challenge, "fresh challenge must be issued")
	}

	t.Log("malformed payload")
	{
		rec := s.do(http.MethodPost, "/api/requirements", `{"name":{"first":"Ann"}}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	requirements, err := s.requirementRps.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, requirements, 1, "only valid submission must be stored")
}

func (s *handlersTestSuite) TestAdminEndpointsRequireSession() {
	t := s.T()

	for _, target := range []string{"/api/requirements", "/api/requirements/export", "/api/session"} {
		rec := s.do(http.MethodGet, target, "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s must require session", target)
	}

	rec := s.do(http.MethodGet, "/api/requirements", "", "not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func (s *handlersTestSuite) TestSession() {
	t := s.T()

	t.Log("wrong challenge answer")
	{
		c := s.challenge()
		body := fmt.Sprintf(`{"email":%q,"password":%q,"challengeId":%q,"captcha":"%d"}`, testAdminEmail, testAdminPassword, c.ID, c.Num1+c.Num2+1)
		rec := s.do(http.MethodPost, "/api/session", body, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Incorrect CAPTCHA answer.")
	}

	t.Log("missing credentials")
	{
		rec := s.do(http.MethodPost, "/api/session", `{"email":""}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	token := s.login()

	t.Log("current session")
	{
		rec := s.do(http.MethodGet, "/api/session", "", token)
		require.Equal(t, http.StatusOK, rec.Code)

		var session model.Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
		require.Equal(t, testAdminEmail, session.Email)
	}

	t.Log("logout invalidates token")
	{
		rec := s.do(http.MethodDelete, "/api/session", "", token)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(http.MethodGet, "/api/session", "", token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func (s *handlersTestSuite) TestListAndExport() {
	t := s.T()
	token := s.login()

	t.Log("nothing to export")
	{
		rec := s.do(http.MethodGet, "/api/requirements/export", "", token)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "No data to export")
	}

	require.Equal(t, http.StatusCreated, s.submit("Ann Lee", 7500000).Code)
	require.Equal(t, http.StatusCreated, s.submit("Ravi Kumar", 4000000).Code)

	t.Log("list is newest first")
	{
		rec := s.do(http.MethodGet, "/api/requirements", "", token)
		require.Equal(t, http.StatusOK, rec.Code)

		var requirements []model.Requirement
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &requirements))
		require.Len(t, requirements, 2)
		require.Equal(t, "Ravi Kumar", requirements[0].Name)
	}

	t.Log("list with criteria")
	{
		rec := s.do(http.MethodGet, "/api/requirements?search=ann&minBudget=5000000&sort=budget&order=desc", "", token)
		require.Equal(t, http.StatusOK, rec.Code)

		var requirements []model.Requirement
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &requirements))
		require.Len(t, requirements, 1)
		require.Equal(t, "Ann Lee", requirements[0].Name)
	}

	t.Log("unknown sort field")
	{
		rec := s.do(http.MethodGet, "/api/requirements?sort=name", "", token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	t.Log("export returns csv attachment")
	{
		rec := s.do(http.MethodGet, "/api/requirements/export?maxBudget=5000000", "", token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
		require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "ilandspaces_leads_")

		rows, err := csv.NewReader(rec.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2, "header and single matching row expected")
		require.Equal(t, "Ravi Kumar", rows[1][0])
	}
}

func (s *handlersTestSuite) TestStatusAndDelete() {
	t := s.T()
	token := s.login()

	rec := s.submit("Ann Lee", 7500000)
	require.Equal(t, http.StatusCreated, rec.Code)

	var req model.Requirement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
	target := "/api/requirements/" + req.ID

	status := func() model.Status {
		stored, err := s.requirementRps.FindByID(context.Background(), req.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		return stored.Status
	}

	t.Log("unknown status")
	{
		rec := s.do(http.MethodPatch, target, `{"status":"Archived"}`, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	t.Log("contacting doesn't need confirmation")
	{
		rec := s.do(http.MethodPatch, target, `{"status":"Contacted"}`, token)
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
		require.Equal(t, model.StatusContacted, status())
	}

	t.Log("closing needs confirmation")
	{
		rec := s.do(http.MethodPatch, target, `{"status":"Closed"}`, token)
		require.Equal(t, http.StatusPreconditionRequired, rec.Code)

		var body confirmationRequired
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, service.StatusPrompt(model.StatusClosed), body.Message)
		require.Equal(t, "confirm=true", body.Confirm)
		require.Equal(t, model.StatusContacted, status(), "status must stay untouched")
	}

	t.Log("contacted lead can't be marked as spam")
	{
		rec := s.do(http.MethodPatch, target+"?confirm=true", `{"status":"Spam"}`, token)
		require.Equal(t, http.StatusConflict, rec.Code)
	}

	t.Log("confirmed close")
	{
		rec := s.do(http.MethodPatch, target+"?confirm=true", `{"status":"Closed"}`, token)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, model.StatusClosed, status())
	}

	t.Log("delete needs confirmation")
	{
		rec := s.do(http.MethodDelete, target, "", token)
		require.Equal(t, http.StatusPreconditionRequired, rec.Code)
		require.Contains(t, rec.Body.String(), service.DeletePrompt)
	}

	t.Log("confirmed delete is idempotent")
	{
		rec := s.do(http.MethodDelete, target+"?confirm=true", "", token)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(http.MethodDelete, target+"?confirm=true", "", token)
		require.Equal(t, http.StatusNoContent, rec.Code)

		stored, err := s.requirementRps.FindByID(context.Background(), req.ID)
		require.NoError(t, err)
		require.Nil(t, stored)
	}
}

func (s *handlersTestSuite) TestStatusUpdateTargetsPathID() {
	t := s.T()
	token := s.login()

	ids := make([]string, 0, 2)
	for _, name := range []string{"Ann Lee", "Ravi Kumar"} {
		rec := s.submit(name, 7500000)
		require.Equal(t, http.StatusCreated, rec.Code)

		var req model.Requirement
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
		ids = append(ids, req.ID)
	}
	ann, ravi := ids[0], ids[1]

	t.Log("id in body doesn't redirect update")
	{
		body := fmt.Sprintf(`{"id":%q,"status":"Contacted"}`, ravi)
		rec := s.do(http.MethodPatch, "/api/requirements/"+ann, body, token)
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	}

	t.Log("only lead from path is changed")
	{
		stored, err := s.requirementRps.FindByID(context.Background(), ann)
		require.NoError(t, err)
		require.Equal(t, model.StatusContacted, stored.Status)

		stored, err = s.requirementRps.FindByID(context.Background(), ravi)
		require.NoError(t, err)
		require.Equal(t, model.StatusNew, stored.Status)
	}
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(handlersTestSuite))
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "validation", err: &apperrors.ValidationErr{Fields: apperrors.FieldErrors{"name": "required"}}, code: http.StatusBadRequest},
		{name: "payload", err: &validation.PayloadError{}, code: http.StatusBadRequest},
		{name: "auth", err: apperrors.NewAuthErr("Invalid credentials.", nil), code: http.StatusUnauthorized},
		{name: "submission", err: apperrors.NewSubmissionErr(errors.New("disk full"), nil), code: http.StatusServiceUnavailable},
		{name: "business", err: apperrors.NewBusinessErr("status", "not allowed"), code: http.StatusConflict},
		{name: "confirmation", err: apperrors.NewConfirmationErr(service.DeletePrompt), code: http.StatusPreconditionRequired},
		{name: "nothing to export", err: fmt.Errorf("export - %w", apperrors.ErrNothingToExport), code: http.StatusUnprocessableEntity},
		{name: "echo", err: echo.NewHTTPError(http.StatusMethodNotAllowed), code: http.StatusMethodNotAllowed},
		{name: "unexpected", err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := errorResponse(tt.err)
			require.Equal(t, tt.code, code)
			require.NotNil(t, body)
		})
	}

	t.Log("internal details of echo errors are hidden")
	{
		_, body := errorResponse(echo.NewHTTPError(http.StatusBadGateway).SetInternal(errors.New("upstream secret")))
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		require.NotContains(t, string(raw), "upstream secret")
	}
}

func TestHTTPErrorHandlerLogsServerErrors(t *testing.T) {
	logger, hook := test.NewNullLogger()
	e := echo.New()
	handler := HTTPErrorHandler(logger)

	rec := httptest.NewRecorder()
	handler(apperrors.NewBusinessErr("status", "not allowed"), e.NewContext(httptest.NewRequest(http.MethodPatch, "/", nil), rec))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Empty(t, hook.AllEntries(), "client errors must not be logged")

	rec = httptest.NewRecorder()
	handler(errors.New("boom"), e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, hook.AllEntries(), 1)
	require.NotContains(t, rec.Body.String(), "boom")

	rec = httptest.NewRecorder()
	handler(errors.New("boom"), e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Zero(t, rec.Body.Len(), "head response has no body")
}
