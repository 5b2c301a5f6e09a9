package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/umalmyha/leads/internal/captcha"
	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/notify"
	"github.com/umalmyha/leads/internal/repository"
	"github.com/umalmyha/leads/internal/storage/kv"
	"github.com/umalmyha/leads/internal/validation"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *recordingNotifier) Events() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}

func newCaptchaService() captcha.Service {
	return captcha.NewService(repository.NewKvChallengeRepository(kv.NewMemoryStore()), time.Minute)
}

func newRequirementValidator(t *testing.T) *validation.RequirementValidator {
	v, trans, err := validation.New()
	require.NoError(t, err, "failed to build validator")
	return validation.NewRequirementValidator(v, trans)
}

func validForm() *model.RequirementForm {
	return &model.RequirementForm{
		Name:              "Ann Lee",
		Mobile:            "9876543210",
		Email:             "ann@x.com",
		Budget:            "7500000",
		FlatSize:          "1200",
		CurrentLocation:   "HSR",
		PreferredLocation: "Sarjapur",
		FloorPreference:   "4",
		Requirement:       "balcony",
	}
}

func solvedForm(t *testing.T, captchaSvc captcha.Service) *model.RequirementForm {
	c, err := captchaSvc.Issue(context.Background())
	require.NoError(t, err, "failed to issue challenge")

	form := validForm()
	form.ChallengeID = model.FormValue(c.ID)
	form.ChallengeAnswer = model.FormValue(strconv.Itoa(c.Answer))
	return form
}
