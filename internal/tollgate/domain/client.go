package domain

import "time"

// Client is a registered caller allowed to exchange credentials for tokens.
type Client struct {
	ID         string
	SecretHash string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
