// Package notify delivers requirement change events to interested parties.
package notify

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/leads/internal/model"
)

// EventType is kind of requirement change
type EventType string

const (
	EventCreated       EventType = "requirement.created"
	EventStatusChanged EventType = "requirement.status_changed"
	EventDeleted       EventType = "requirement.deleted"
)

// Event describes single requirement change
type Event struct {
	Type          EventType          `json:"type"`
	RequirementID string             `json:"requirementId"`
	Status        model.Status       `json:"status,omitempty"`
	Requirement   *model.Requirement `json:"requirement,omitempty"`
	At            time.Time          `json:"at"`
}

// Notifier delivers events
type Notifier interface {
	Notify(context.Context, Event) error
}

type nopNotifier struct{}

// Nop returns Notifier dropping every event
func Nop() Notifier {
	return nopNotifier{}
}

func (nopNotifier) Notify(context.Context, Event) error {
	return nil
}

type multiNotifier struct {
	notifiers []Notifier
	logger    logrus.FieldLogger
}

// Multi fans event out to every notifier, failures are logged and never reported back
func Multi(logger logrus.FieldLogger, notifiers ...Notifier) Notifier {
	return &multiNotifier{notifiers: notifiers, logger: logger}
}

func (m *multiNotifier) Notify(ctx context.Context, e Event) error {
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, e); err != nil {
			m.logger.WithFields(logrus.Fields{
				"event":         e.Type,
				"requirementId": e.RequirementID,
			}).WithError(err).Warn("failed to deliver requirement change event")
		}
	}
	return nil
}
