package model

import "time"

// Challenge is arithmetic human-verification challenge
type Challenge struct {
	ID        string    `json:"id" msgpack:"id"`
	Num1      int       `json:"num1" msgpack:"num1"`
	Num2      int       `json:"num2" msgpack:"num2"`
	Answer    int       `json:"-" msgpack:"answer"`
	ExpiresAt time.Time `json:"expiresAt" msgpack:"expiresAt"`
}
