package domain

import "time"

// Grower is a registered bot user.
type Grower struct {
	ID         int64
	TelegramID int64
	FirstName  string
	Username   string
	Language   string
	IsAdmin    bool
	LastSeen   time.Time
	CreatedAt  time.Time
}
