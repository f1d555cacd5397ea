package domain

import "time"

// AuthToken is a persisted per-user credential row, used for both refresh
// and recovery tokens. Each user has at most one live row per token kind;
// issuing a new token replaces the prior one.
type AuthToken struct {
	UserID    int64     `json:"user_id"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
