package infra

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/umalmyha/leads/internal/config"
	"github.com/umalmyha/leads/internal/handlers"
	"github.com/umalmyha/leads/internal/middleware"
	"github.com/umalmyha/leads/internal/notify"
	"github.com/umalmyha/leads/internal/validation"

	_ "github.com/umalmyha/leads/docs"
)

func Router(cfg config.HTTPCfg, services *Services, hub *notify.Hub, logger logrus.FieldLogger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	v, trans, err := validation.New()
	if err != nil {
		return nil, err
	}
	e.Validator = validation.Echo(v, trans)
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(logger)

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())

	// Middleware
	authorizeMw := middleware.Authorize(services.Auth, handlers.SessionContextKey)

	// Handlers
	challengeHandler := handlers.NewChallengeHTTPHandler(services.Captcha)
	requirementHandler := handlers.NewRequirementHTTPHandler(services.Requirement)
	sessionHandler := handlers.NewSessionHTTPHandler(services.Auth)
	eventsHandler := handlers.NewEventsHTTPHandler(hub)

	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if cfg.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// API routes
	api := e.Group("/api")

	// public
	api.GET("/challenge", challengeHandler.Issue)
	api.POST("/requirements", requirementHandler.Submit)
	api.POST("/session", sessionHandler.Login)

	// admin
	api.GET("/session", sessionHandler.Current, authorizeMw)
	api.DELETE("/session", sessionHandler.Logout, authorizeMw)
	api.GET("/requirements", requirementHandler.GetAll, authorizeMw)
	api.GET("/requirements/export", requirementHandler.Export, authorizeMw)
	api.GET("/requirements/events", eventsHandler.Subscribe, authorizeMw)
	api.PATCH("/requirements/:id", requirementHandler.SetStatus, authorizeMw)
	api.DELETE("/requirements/:id", requirementHandler.DeleteByID, authorizeMw)

	return e, nil
}
