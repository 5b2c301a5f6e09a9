package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/leads/internal/auth"
	"github.com/umalmyha/leads/internal/captcha"
	apperrors "github.com/umalmyha/leads/internal/errors"
	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/repository"
)

const (
	incorrectLoginCaptchaMsg = "Incorrect CAPTCHA answer."
	invalidCredentialsMsg    = "Invalid credentials."
	invalidSessionMsg        = "Session is missing or no longer active"
)

// AuthService manages the single admin session
type AuthService interface {
	Login(context.Context, model.Login) (*model.Session, error)
	CurrentSession(context.Context) (*model.Session, error)
	Logout(context.Context) error
	Authenticate(context.Context, string) (*model.Session, error)
}

type authService struct {
	sessionRps   repository.SessionRepository
	captchaSvc   captcha.Service
	verifier     auth.CredentialVerifier
	jwtIssuer    *auth.JwtIssuer
	jwtValidator *auth.JwtValidator
	loginDelay   time.Duration
	logger       logrus.FieldLogger
}

// NewAuthService builds AuthService
func NewAuthService(
	sessionRps repository.SessionRepository,
	captchaSvc captcha.Service,
	verifier auth.CredentialVerifier,
	jwtIssuer *auth.JwtIssuer,
	jwtValidator *auth.JwtValidator,
	loginDelay time.Duration,
	logger logrus.FieldLogger,
) AuthService {
	return &authService{
		sessionRps:   sessionRps,
		captchaSvc:   captchaSvc,
		verifier:     verifier,
		jwtIssuer:    jwtIssuer,
		jwtValidator: jwtValidator,
		loginDelay:   loginDelay,
		logger:       logger,
	}
}

func (s *authService) Login(ctx context.Context, login model.Login) (*model.Session, error) {
	solved, err := s.captchaSvc.Verify(ctx, login.ChallengeID, login.ChallengeAnswer)
	if err != nil {
		return nil, err
	}

	if !solved {
		return nil, apperrors.NewAuthErr(incorrectLoginCaptchaMsg, freshChallenge(ctx, s.captchaSvc, s.logger))
	}

	if err := wait(ctx, s.loginDelay); err != nil {
		return nil, err
	}

	if !s.verifier.Verify(login.Email, login.Password) {
		s.logger.WithField("email", login.Email).Warn("admin login attempt with invalid credentials")
		return nil, apperrors.NewAuthErr(invalidCredentialsMsg, freshChallenge(ctx, s.captchaSvc, s.logger))
	}

	token, err := s.jwtIssuer.Sign(login.Email, login.At)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		Email:     login.Email,
		Token:     token,
		CreatedAt: login.At.UTC(),
	}

	if err := s.sessionRps.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *authService) CurrentSession(ctx context.Context) (*model.Session, error) {
	return s.sessionRps.Find(ctx)
}

func (s *authService) Logout(ctx context.Context) error {
	return s.sessionRps.Delete(ctx)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	if _, err := s.jwtValidator.Verify(token); err != nil {
		return nil, apperrors.NewAuthErr(invalidSessionMsg, nil)
	}

	session, err := s.sessionRps.Find(ctx)
	if err != nil {
		return nil, err
	}

	// newer login replaces the session, older tokens stop working
	if session == nil || session.Token != token {
		return nil, apperrors.NewAuthErr(invalidSessionMsg, nil)
	}
	return session, nil
}
