package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one attempt at a protocol. The pre ratings are captured at
// creation and never change; the post ratings, completed flag and
// completed_at are set together exactly once when the session finishes.
// An incomplete session always has nil post values.
type Session struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ProtocolID  string     `json:"protocol_id"`
	PreCalm     int        `json:"pre_calm"`
	PreClarity  int        `json:"pre_clarity"`
	PreEnergy   int        `json:"pre_energy"`
	PostCalm    *int       `json:"post_calm"`
	PostClarity *int       `json:"post_clarity"`
	PostEnergy  *int       `json:"post_energy"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HasPostRatings reports whether all three post values are present.
func (s *Session) HasPostRatings() bool {
	return s.PostCalm != nil && s.PostClarity != nil && s.PostEnergy != nil
}

type CreateSessionRequest struct {
	ProtocolID string `json:"protocol_id"`
	PreCalm    int    `json:"pre_calm"`
	PreClarity int    `json:"pre_clarity"`
	PreEnergy  int    `json:"pre_energy"`
}

type CompleteSessionRequest struct {
	PostCalm    int `json:"post_calm"`
	PostClarity int `json:"post_clarity"`
	PostEnergy  int `json:"post_energy"`
}
