package domain

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
)

// TokenTypeBearer is the token_type reported to clients.
const TokenTypeBearer = "Bearer"

// TokenRecord is the server-side state of one issued token. Its presence in
// the token store is what makes the token live.
type TokenRecord struct {
	ClientID  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenRecordJSON struct {
	ClientID  string `json:"clientId"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// MarshalJSON encodes timestamps as epoch milliseconds.
func (r TokenRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenRecordJSON{
		ClientID:  r.ClientID,
		IssuedAt:  r.IssuedAt.UnixMilli(),
		ExpiresAt: r.ExpiresAt.UnixMilli(),
	})
}

func (r *TokenRecord) UnmarshalJSON(b []byte) error {
	var raw tokenRecordJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.ClientID = raw.ClientID
	r.IssuedAt = time.UnixMilli(raw.IssuedAt).UTC()
	r.ExpiresAt = time.UnixMilli(raw.ExpiresAt).UTC()
	return nil
}

// IssuedToken is what a successful credential exchange hands back.
type IssuedToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Identity is the result of authenticating a presented token.
type Identity struct {
	ClientID string
	Claims   jwtx.Claims
	Record   TokenRecord
}
