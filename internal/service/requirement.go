package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/leads/internal/captcha"
	apperrors "github.com/umalmyha/leads/internal/errors"
	"github.com/umalmyha/leads/internal/export"
	"github.com/umalmyha/leads/internal/filter"
	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/notify"
	"github.com/umalmyha/leads/internal/repository"
	"github.com/umalmyha/leads/internal/validation"
	"github.com/umalmyha/leads/pkg/db/transactor"
)

const captchaField = "captcha"

const incorrectCaptchaMsg = "Incorrect calculation"

// statusUpdateAttempts covers the longest status path New -> Contacted -> Closed
const statusUpdateAttempts = 3

// DeletePrompt is question admin confirms before requirement removal
const DeletePrompt = "Are you sure you want to delete this record? This action cannot be undone."

// StatusPrompt returns question admin confirms before moving lead to status
func StatusPrompt(status model.Status) string {
	switch status {
	case model.StatusContacted:
		return "Are you sure you want to mark this lead as contacted?"
	case model.StatusSpam:
		return "Are you sure you want to mark this lead as spam?"
	default:
		return "Are you sure you want to close this lead?"
	}
}

// RequirementOptions tunes RequirementService behavior
type RequirementOptions struct {
	SubmitDelay  time.Duration
	ExportPrefix string
	Export       export.Options
}

// RequirementService covers public submission and admin triage of requirements
type RequirementService interface {
	Submit(context.Context, *model.RequirementForm) (*model.Requirement, error)
	FindAll(context.Context, model.Criteria) ([]*model.Requirement, error)
	SetStatus(ctx context.Context, id string, status model.Status, confirmed bool) error
	DeleteByID(ctx context.Context, id string, confirmed bool) error
	Export(context.Context, model.Criteria, io.Writer) error
	ExportFileName() string
}

type requirementService struct {
	trx            transactor.Transactor
	requirementRps repository.RequirementRepository
	validator      *validation.RequirementValidator
	captchaSvc     captcha.Service
	notifier       notify.Notifier
	logger         logrus.FieldLogger
	opts           RequirementOptions
	now            func() time.Time
}

// NewRequirementService builds RequirementService
func NewRequirementService(
	trx transactor.Transactor,
	requirementRps repository.RequirementRepository,
	validator *validation.RequirementValidator,
	captchaSvc captcha.Service,
	notifier notify.Notifier,
	logger logrus.FieldLogger,
	opts RequirementOptions,
) RequirementService {
	return &requirementService{
		trx:            trx,
		requirementRps: requirementRps,
		validator:      validator,
		captchaSvc:     captchaSvc,
		notifier:       notifier,
		logger:         logger,
		opts:           opts,
		now:            time.Now,
	}
}

func (s *requirementService) Submit(ctx context.Context, form *model.RequirementForm) (*model.Requirement, error) {
	fieldErrs, err := s.validator.Validate(form)
	if err != nil {
		return nil, err
	}

	// challenge is consumed even if some fields are invalid
	solved, err := s.captchaSvc.Verify(ctx, form.ChallengeID.String(), form.ChallengeAnswer.String())
	if err != nil {
		return nil, err
	}

	if !solved {
		if fieldErrs == nil {
			fieldErrs = make(apperrors.FieldErrors)
		}
		fieldErrs[captchaField] = incorrectCaptchaMsg
	}

	if len(fieldErrs) > 0 {
		return nil, &apperrors.ValidationErr{Fields: fieldErrs, Challenge: freshChallenge(ctx, s.captchaSvc, s.logger)}
	}

	if err := wait(ctx, s.opts.SubmitDelay); err != nil {
		return nil, err
	}

	// stamped right before insert to keep storage order in line with createdAt
	req := validation.Normalize(form)
	req.ID = ulid.Make().String()
	req.CreatedAt = s.now().UTC()
	req.Status = model.StatusNew

	if err := s.requirementRps.Create(ctx, req); err != nil {
		s.logger.WithError(err).Error("failed to store submitted requirement")
		return nil, apperrors.NewSubmissionErr(err, freshChallenge(ctx, s.captchaSvc, s.logger))
	}

	s.notify(ctx, notify.Event{Type: notify.EventCreated, RequirementID: req.ID, Status: req.Status, Requirement: req})
	return req, nil
}

func (s *requirementService) FindAll(ctx context.Context, c model.Criteria) ([]*model.Requirement, error) {
	requirements, err := s.requirementRps.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := filter.Apply(requirements, c)
	filter.Sort(res, c.Sort, c.Order)
	return res, nil
}

func (s *requirementService) SetStatus(ctx context.Context, id string, status model.Status, confirmed bool) error {
	if !status.Valid() {
		return apperrors.NewBusinessErr("status", fmt.Sprintf("unknown status %s", status))
	}

	if status.Destructive() && !confirmed {
		return apperrors.NewConfirmationErr(StatusPrompt(status))
	}

	changed := false
	err := s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		// update misses only if status was moved concurrently, decide again on fresh record
		for attempt := 0; attempt < statusUpdateAttempts; attempt++ {
			req, err := s.requirementRps.FindByID(ctx, id)
			if err != nil {
				return err
			}

			if req == nil || req.Status == status {
				return nil
			}

			if !req.Status.CanTransitionTo(status) {
				return apperrors.NewBusinessErr("status", fmt.Sprintf("lead in status %s can't be moved to %s", req.Status, status))
			}

			changed, err = s.requirementRps.UpdateStatus(ctx, id, req.Status, status)
			if err != nil || changed {
				return err
			}
		}
		return fmt.Errorf("status of requirement %s keeps changing concurrently", id)
	})
	if err != nil {
		return err
	}

	if changed {
		s.notify(ctx, notify.Event{Type: notify.EventStatusChanged, RequirementID: id, Status: status})
	}
	return nil
}

func (s *requirementService) DeleteByID(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return apperrors.NewConfirmationErr(DeletePrompt)
	}

	deleted, err := s.requirementRps.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if deleted {
		s.notify(ctx, notify.Event{Type: notify.EventDeleted, RequirementID: id})
	}
	return nil
}

func (s *requirementService) Export(ctx context.Context, c model.Criteria, w io.Writer) error {
	requirements, err := s.FindAll(ctx, c)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, requirements, s.opts.Export)
}

func (s *requirementService) ExportFileName() string {
	now := s.now()
	if s.opts.Export.Location != nil {
		now = now.In(s.opts.Export.Location)
	}
	return export.FileName(s.opts.ExportPrefix, now)
}

func (s *requirementService) notify(ctx context.Context, e notify.Event) {
	e.At = s.now().UTC()
	if err := s.notifier.Notify(ctx, e); err != nil {
		s.logger.WithError(err).WithField("event", e.Type).Warn("failed to notify about requirement change")
	}
}

// freshChallenge issues challenge for the next attempt, nil if store refused it
func freshChallenge(ctx context.Context, captchaSvc captcha.Service, logger logrus.FieldLogger) *model.Challenge {
	c, err := captchaSvc.Issue(ctx)
	if err != nil {
		logger.WithError(err).Error("failed to issue fresh challenge")
		return nil
	}
	return c
}

// wait simulates processing latency, it is interrupted by ctx
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
