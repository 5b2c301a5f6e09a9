package model

import "time"

// Status is lead processing status
type Status string

const (
	// StatusNew is assigned to every freshly submitted requirement
	StatusNew Status = "New"
	// StatusContacted means admin has reached out to the customer
	StatusContacted Status = "Contacted"
	// StatusClosed means lead is done
	StatusClosed Status = "Closed"
	// StatusSpam means lead was moderated out as spam
	StatusSpam Status = "Spam"
)

// Statuses lists all known statuses
var Statuses = []Status{StatusNew, StatusContacted, StatusClosed, StatusSpam}

// Valid checks status is one of the known statuses
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether admin may move lead from s to next
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusNew:
		return next == StatusContacted || next == StatusClosed || next == StatusSpam
	case StatusContacted:
		return next == StatusClosed
	default:
		return false
	}
}

// Destructive reports whether moving lead to s needs explicit confirmation
func (s Status) Destructive() bool {
	return s == StatusClosed || s == StatusSpam
}

// Direction is preferred facing of the flat
type Direction string

const (
	DirectionNorth Direction = "North"
	DirectionSouth Direction = "South"
	DirectionEast  Direction = "East"
	DirectionWest  Direction = "West"
)

// LookingFor is the kind of property customer is looking for
type LookingFor string

const (
	LookingForGated      LookingFor = "Gated"
	LookingForSemiGated  LookingFor = "Semi-gated"
	LookingForStandalone LookingFor = "Standalone"
)

// Requirement is customer housing requirement (lead) entity
type Requirement struct {
	ID                string     `json:"id" bson:"_id"`
	Name              string     `json:"name" bson:"name"`
	Mobile            string     `json:"mobile" bson:"mobile"`
	AltMobile         *string    `json:"altMobile,omitempty" bson:"altMobile,omitempty"`
	Email             string     `json:"email" bson:"email"`
	Budget            float64    `json:"budget" bson:"budget"`
	FlatSize          float64    `json:"flatSize" bson:"flatSize"`
	CurrentLocation   string     `json:"currentLocation" bson:"currentLocation"`
	PreferredLocation string     `json:"preferredLocation" bson:"preferredLocation"`
	Direction         Direction  `json:"direction" bson:"direction"`
	FloorPreference   int        `json:"floorPreference" bson:"floorPreference"`
	LookingFor        LookingFor `json:"lookingFor" bson:"lookingFor"`
	Requirement       string     `json:"requirement" bson:"requirement"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt"`
	Status            Status     `json:"status" bson:"status"`
}
