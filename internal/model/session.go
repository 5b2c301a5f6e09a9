package model

import "time"

// Session is admin session, there is at most one at a time
type Session struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

// Login is admin login attempt
type Login struct {
	Email           string
	Password        string
	ChallengeID     string
	ChallengeAnswer string
	At              time.Time
}
