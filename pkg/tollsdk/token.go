package tollsdk

import (
	"context"
	"net/http"
	"time"
)

// IssueToken exchanges client credentials for a bearer token.
func (c *Client) IssueToken(ctx context.Context, clientID, clientSecret string) (*TokenResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/oauth/token", map[string]string{
		"client_id":     clientID,
		"client_secret": clientSecret,
	})
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Session holds one issued token.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time
}

// Authenticate issues a token and wraps it in a Session.
func (c *Client) Authenticate(ctx context.Context, clientID, clientSecret string) (*Session, error) {
	tok, err := c.IssueToken(ctx, clientID, clientSecret)
	if err != nil {
		return nil, err
	}
	return c.NewSession(tok.AccessToken, tok.ExpiresIn), nil
}

// NewSession wraps an existing token.
func (c *Client) NewSession(accessToken string, expiresIn int64) *Session {
	return &Session{
		client:    c,
		token:     accessToken,
		expiresAt: time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
}

// AccessToken is the raw bearer token.
func (s *Session) AccessToken() string { return s.token }

// Expired reports whether the token has outlived its advertised lifetime.
// The server may still reject it earlier if it was revoked.
func (s *Session) Expired() bool { return !time.Now().Before(s.expiresAt) }

func (s *Session) authHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + s.token}
}

// GetData calls the protected demo resource.
func (s *Session) GetData(ctx context.Context) (*DataResponse, error) {
	return get[DataResponse](ctx, s.client, "/data", s.authHeader())
}

// Logout revokes the session's token. Later calls with it fail with
// KindTokenNotFoundOrExpired.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.do(ctx, http.MethodPost, "/oauth/logout", s.authHeader())
	if err != nil {
		return err
	}
	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}
