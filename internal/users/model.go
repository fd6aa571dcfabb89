package users

import "time"

// User is a registered portal account. Usernames are stored lowercase so
// equality checks are exact after normalization.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Department   string    `json:"department,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
