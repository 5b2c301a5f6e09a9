// Package captcha issues and verifies single use arithmetic challenges.
package captcha

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/repository"
)

// DefaultTTL is how long issued challenge stays answerable
const DefaultTTL = 10 * time.Minute

const (
	minOperand = 1
	maxOperand = 10
)

// Service issues challenges and verifies answers to them
type Service interface {
	Issue(context.Context) (*model.Challenge, error)
	Verify(context.Context, string, string) (bool, error)
}

type service struct {
	challengeRps repository.ChallengeRepository
	ttl          time.Duration
	operand      func() int
	now          func() time.Time
}

// NewService builds challenge Service, non-positive ttl falls back to DefaultTTL
func NewService(challengeRps repository.ChallengeRepository, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &service{
		challengeRps: challengeRps,
		ttl:          ttl,
		operand:      func() int { return minOperand + rand.Intn(maxOperand-minOperand+1) },
		now:          time.Now,
	}
}

func (s *service) Issue(ctx context.Context) (*model.Challenge, error) {
	num1, num2 := s.operand(), s.operand()
	c := &model.Challenge{
		ID:        uuid.NewString(),
		Num1:      num1,
		Num2:      num2,
		Answer:    num1 + num2,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}

	if err := s.challengeRps.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Verify consumes challenge id whatever the answer is
func (s *service) Verify(ctx context.Context, id string, answer string) (bool, error) {
	if id == "" {
		return false, nil
	}

	c, err := s.challengeRps.Take(ctx, id)
	if err != nil {
		return false, err
	}

	if c == nil || !s.now().Before(c.ExpiresAt) {
		return false, nil
	}

	given, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false, nil
	}
	return given == c.Answer, nil
}
