package infra

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/leads/internal/auth"
	"github.com/umalmyha/leads/internal/captcha"
	"github.com/umalmyha/leads/internal/config"
	"github.com/umalmyha/leads/internal/export"
	"github.com/umalmyha/leads/internal/notify"
	"github.com/umalmyha/leads/internal/service"
	"github.com/umalmyha/leads/internal/validation"
)

// Services is application layer built on top of Storage
type Services struct {
	Captcha     captcha.Service
	Requirement service.RequirementService
	Auth        service.AuthService
}

func BuildServices(cfg config.Config, storage *Storage, notifier notify.Notifier, logger logrus.FieldLogger) (*Services, error) {
	v, trans, err := validation.New()
	if err != nil {
		return nil, err
	}

	loc, err := cfg.ExportCfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load export timezone - %w", err)
	}

	captchaSvc := captcha.NewService(storage.Challenges, cfg.SubmissionCfg.ChallengeTTL)

	requirementSvc := service.NewRequirementService(
		storage.Transactor,
		storage.Requirements,
		validation.NewRequirementValidator(v, trans),
		captchaSvc,
		notifier,
		logger,
		service.RequirementOptions{
			SubmitDelay:  cfg.SubmissionCfg.Delay,
			ExportPrefix: cfg.ExportCfg.FilePrefix,
			Export: export.Options{
				DateLayout: cfg.ExportCfg.DateLayout,
				Location:   loc,
			},
		},
	)

	jwtCfg := cfg.AuthCfg.JwtCfg
	authSvc := service.NewAuthService(
		storage.Sessions,
		captchaSvc,
		CredentialVerifier(cfg.AuthCfg),
		auth.NewJwtIssuer(jwtCfg.Issuer, []byte(jwtCfg.Secret), jwtCfg.TimeToLive),
		auth.NewJwtValidator(jwtCfg.Issuer, []byte(jwtCfg.Secret)),
		cfg.AuthCfg.LoginDelay,
		logger,
	)

	return &Services{
		Captcha:     captchaSvc,
		Requirement: requirementSvc,
		Auth:        authSvc,
	}, nil
}

// CredentialVerifier prefers bcrypt hash over plain password when both are configured
func CredentialVerifier(cfg config.AuthCfg) auth.CredentialVerifier {
	if cfg.AdminPasswordHash != "" {
		return auth.NewBcryptVerifier(cfg.AdminEmail, cfg.AdminPasswordHash)
	}
	return auth.NewStaticVerifier(cfg.AdminEmail, cfg.AdminPassword)
}

// Notifier fans events out to websocket hub and, if configured, amqp exchange.
// Returned close func releases amqp connection.
func Notifier(cfg config.NotifyCfg, hub *notify.Hub, logger logrus.FieldLogger) (notify.Notifier, func() error, error) {
	if cfg.AmqpURL == "" {
		return notify.Multi(logger, hub), func() error { return nil }, nil
	}

	publisher, err := notify.NewAmqpPublisher(cfg.AmqpURL, cfg.AmqpExchange)
	if err != nil {
		return nil, nil, err
	}

	logger.WithField("exchange", cfg.AmqpExchange).Info("requirement events are published to amqp")
	return notify.Multi(logger, hub, publisher), publisher.Close, nil
}
