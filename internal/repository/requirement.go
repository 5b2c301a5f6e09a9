package repository

import (
	"context"
	"errors"

	"github.com/umalmyha/leads/internal/model"
)

// ErrDuplicateRequirement is raised on attempt to store requirement with already used id
var ErrDuplicateRequirement = errors.New("requirement with the same id already exists")

// RequirementRepository is the record store facade.
// FindAll returns newest first by createdAt, DeleteByID reports false for absent ids.
// UpdateStatus sets to only while record still has status from,
// it reports false when record is absent or its status has changed meanwhile.
type RequirementRepository interface {
	FindAll(context.Context) ([]*model.Requirement, error)
	FindByID(context.Context, string) (*model.Requirement, error)
	Create(context.Context, *model.Requirement) error
	UpdateStatus(ctx context.Context, id string, from, to model.Status) (bool, error)
	DeleteByID(context.Context, string) (bool, error)
}

// SessionRepository keeps the single admin session
type SessionRepository interface {
	Find(context.Context) (*model.Session, error)
	Save(context.Context, *model.Session) error
	Delete(context.Context) error
}

// ChallengeRepository keeps issued human-verification challenges until they are taken or expired
type ChallengeRepository interface {
	Save(context.Context, *model.Challenge) error
	Take(context.Context, string) (*model.Challenge, error)
}
