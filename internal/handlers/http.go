package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/leads/internal/captcha"
	"github.com/umalmyha/leads/internal/export"
	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/service"
)

// SessionContextKey is echo context key authenticated admin session is stored under
const SessionContextKey = "session"

type identifier struct {
	ID string `json:"id" validate:"required"`
}

type statusUpdate struct {
	ID     string       `param:"id" json:"-" validate:"required"`
	Status model.Status `json:"status" validate:"required,oneof=New Contacted Closed Spam"`
}

type login struct {
	Email       string `json:"email" form:"email" validate:"required"`
	Password    string `json:"password" form:"password" validate:"required"`
	ChallengeID string `json:"challengeId" form:"challengeId"`
	Captcha     string `json:"captcha" form:"captcha"`
}

// ChallengeHTTPHandler is http handler for challenge endpoint
type ChallengeHTTPHandler struct {
	captchaSvc captcha.Service
}

// NewChallengeHTTPHandler builds new ChallengeHTTPHandler
func NewChallengeHTTPHandler(captchaSvc captcha.Service) *ChallengeHTTPHandler {
	return &ChallengeHTTPHandler{captchaSvc: captchaSvc}
}

// Issue issues new challenge
// @Summary     New challenge
// @Description Issues single use arithmetic challenge which must be answered on submission or login
// @Tags        challenge
// @Produce     json
// @Success     200    {object} model.Challenge
// @Failure     500    {object} echo.HTTPError
// @Router      /api/challenge [get]
func (h *ChallengeHTTPHandler) Issue(c echo.Context) error {
	challenge, err := h.captchaSvc.Issue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, challenge)
}

// RequirementHTTPHandler is http handler for requirements endpoint
type RequirementHTTPHandler struct {
	requirementSvc service.RequirementService
}

// NewRequirementHTTPHandler builds new RequirementHTTPHandler
func NewRequirementHTTPHandler(requirementSvc service.RequirementService) *RequirementHTTPHandler {
	return &RequirementHTTPHandler{requirementSvc: requirementSvc}
}

// Submit submits public requirement form
// @Summary     Submit requirement
// @Description Validates form and stores new lead, invalid forms are answered with field errors and fresh challenge
// @Tags        requirements
// @Accept      json
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       form body     model.RequirementForm true "Requirement form"
// @Success     201  {object} model.Requirement
// @Failure     400  {object} errors.ValidationErr
// @Failure     503  {object} errors.SubmissionErr
// @Failure     500  {object} echo.HTTPError
// @Router      /api/requirements [post]
func (h *RequirementHTTPHandler) Submit(c echo.Context) error {
	var form model.RequirementForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req, err := h.requirementSvc.Submit(c.Request().Context(), &form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, req)
}

// GetAll gets filtered requirements
// @Summary     List requirements
// @Description Returns requirements matching all provided criteria, newest first unless sort is set
// @Tags        requirements
// @Security    ApiKeyAuth
// @Produce     json
// @Param       search     query    string false "Case-insensitive search over name and locations"
// @Param       status     query    string false "Exact status" Enums(New, Contacted, Closed, Spam)
// @Param       lookingFor query    string false "Exact property kind" Enums(Gated, Semi-gated, Standalone)
// @Param       minBudget  query    string false "Inclusive lower budget bound"
// @Param       maxBudget  query    string false "Inclusive upper budget bound"
// @Param       sort       query    string false "Sort field" Enums(createdAt, budget, flatSize)
// @Param       order      query    string false "Sort order" Enums(asc, desc)
// @Success     200        {array}  model.Requirement
// @Failure     400        {object} validation.PayloadError
// @Failure     401        {object} errors.AuthErr
// @Failure     500        {object} echo.HTTPError
// @Router      /api/requirements [get]
func (h *RequirementHTTPHandler) GetAll(c echo.Context) error {
	criteria, err := bindCriteria(c)
	if err != nil {
		return err
	}

	requirements, err := h.requirementSvc.FindAll(c.Request().Context(), criteria)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requirements)
}

// Export exports filtered requirements as csv
// @Summary     Export requirements
// @Description Returns csv attachment with requirements matching provided criteria
// @Tags        requirements
// @Security    ApiKeyAuth
// @Produce     text/csv
// @Param       search     query    string false "Case-insensitive search over name and locations"
// @Param       status     query    string false "Exact status" Enums(New, Contacted, Closed, Spam)
// @Param       lookingFor query    string false "Exact property kind" Enums(Gated, Semi-gated, Standalone)
// @Param       minBudget  query    string false "Inclusive lower budget bound"
// @Param       maxBudget  query    string false "Inclusive upper budget bound"
// @Param       sort       query    string false "Sort field" Enums(createdAt, budget, flatSize)
// @Param       order      query    string false "Sort order" Enums(asc, desc)
// @Success     200        {file}   file
// @Failure     401        {object} errors.AuthErr
// @Failure     422        {object} echo.HTTPError
// @Failure     500        {object} echo.HTTPError
// @Router      /api/requirements/export [get]
func (h *RequirementHTTPHandler) Export(c echo.Context) error {
	criteria, err := bindCriteria(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.requirementSvc.Export(c.Request().Context(), criteria, &buf); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", h.requirementSvc.ExportFileName()))
	return c.Blob(http.StatusOK, export.MIMECSV, buf.Bytes())
}

// SetStatus changes requirement status
// @Summary     Change requirement status
// @Description Moves lead to another status, closing or marking as spam must be confirmed
// @Tags        requirements
// @Security    ApiKeyAuth
// @Accept      json
// @Param       id      path     string       true  "Requirement id"
// @Param       confirm query    bool         false "Confirms destructive status change"
// @Param       status  body     statusUpdate true  "New status"
// @Success     204     "Successful status code"
// @Failure     400     {object} validation.PayloadError
// @Failure     401     {object} errors.AuthErr
// @Failure     409     {object} errors.BusinessErr
// @Failure     428     {object} echo.HTTPError
// @Failure     500     {object} echo.HTTPError
// @Router      /api/requirements/{id} [patch]
func (h *RequirementHTTPHandler) SetStatus(c echo.Context) error {
	var su statusUpdate
	if err := c.Bind(&su); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&su); err != nil {
		return err
	}

	if err := h.requirementSvc.SetStatus(c.Request().Context(), su.ID, su.Status, confirmed(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteByID deletes requirement
// @Summary     Delete requirement by id
// @Description Deletes requirement with provided id, deletion must be confirmed
// @Tags        requirements
// @Security    ApiKeyAuth
// @Param       id      path     string true  "Requirement id"
// @Param       confirm query    bool   false "Confirms deletion"
// @Success     204     "Successful status code"
// @Failure     401     {object} errors.AuthErr
// @Failure     428     {object} echo.HTTPError
// @Failure     500     {object} echo.HTTPError
// @Router      /api/requirements/{id} [delete]
func (h *RequirementHTTPHandler) DeleteByID(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	if err := h.requirementSvc.DeleteByID(c.Request().Context(), id, confirmed(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SessionHTTPHandler is http handler for admin session endpoint
type SessionHTTPHandler struct {
	authSvc service.AuthService
}

// NewSessionHTTPHandler builds new SessionHTTPHandler
func NewSessionHTTPHandler(authSvc service.AuthService) *SessionHTTPHandler {
	return &SessionHTTPHandler{authSvc: authSvc}
}

// Login logins admin
// @Summary     Login admin
// @Description Verifies challenge answer and credentials, replaces admin session
// @Tags        session
// @Accept      json
// @Produce     json
// @Param       login body     login true "Admin credentials and challenge answer"
// @Success     200   {object} model.Session
// @Failure     400   {object} validation.PayloadError
// @Failure     401   {object} errors.AuthErr
// @Failure     500   {object} echo.HTTPError
// @Router      /api/session [post]
func (h *SessionHTTPHandler) Login(c echo.Context) error {
	var lgn login
	if err := c.Bind(&lgn); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&lgn); err != nil {
		return err
	}

	session, err := h.authSvc.Login(c.Request().Context(), model.Login{
		Email:           lgn.Email,
		Password:        lgn.Password,
		ChallengeID:     lgn.ChallengeID,
		ChallengeAnswer: lgn.Captcha,
		At:              time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

// Current returns current admin session
// @Summary     Current session
// @Description Returns active admin session
// @Tags        session
// @Security    ApiKeyAuth
// @Produce     json
// @Success     200 {object} model.Session
// @Failure     401 {object} errors.AuthErr
// @Router      /api/session [get]
func (h *SessionHTTPHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, c.Get(SessionContextKey))
}

// Logout logouts admin
// @Summary     Logout admin
// @Description Removes admin session
// @Tags        session
// @Security    ApiKeyAuth
// @Success     204 "Successful status code"
// @Failure     401 {object} errors.AuthErr
// @Failure     500 {object} echo.HTTPError
// @Router      /api/session [delete]
func (h *SessionHTTPHandler) Logout(c echo.Context) error {
	if err := h.authSvc.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindCriteria(c echo.Context) (model.Criteria, error) {
	var criteria model.Criteria
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &criteria); err != nil {
		return criteria, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&criteria); err != nil {
		return criteria, err
	}
	return criteria, nil
}

func confirmed(c echo.Context) bool {
	ok, err := strconv.ParseBool(c.QueryParam("confirm"))
	return err == nil && ok
}
