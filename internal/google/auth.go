package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"study-planner/internal/model"
)

const (
	authEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenEndpoint    = "https://oauth2.googleapis.com/token"
	userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/tasks",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

var (
	ErrNotConnected   = errors.New("google calendar not connected")
	ErrNoRefreshToken = errors.New("no refresh token stored, reconnect google calendar")
)

// Refresh when the access token is missing or expires within this window.
const expiryLeeway = 5 * time.Minute

// TokenStore persists rotated credentials back onto the user record.
type TokenStore interface {
	Save(ctx context.Context, user *model.User) error
}

// Auth exchanges and refreshes OAuth tokens. It is a plain value built from
// config and passed explicitly; there is no package-level client state.
type Auth struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	HTTPClient  *http.Client
	TokenURL    string // overridable in tests
	UserInfoURL string
}

func NewAuth(clientID, clientSecret, redirectURI string) *Auth {
	return &Auth{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
		TokenURL:     tokenEndpoint,
		UserInfoURL:  userinfoEndpoint,
	}
}

// AuthURL builds the consent URL. Offline access with forced consent so a
// refresh token is always issued.
func (a *Auth) AuthURL(state string) string {
	q := url.Values{}
	q.Set("client_id", a.ClientID)
	q.Set("redirect_uri", a.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(scopes, " "))
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	q.Set("state", state)
	return authEndpoint + "?" + q.Encode()
}

// Token is the token endpoint's response with a resolved expiry.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	Expiry       time.Time `json:"-"`
}

// Exchange trades an authorization code for tokens.
func (a *Auth) Exchange(ctx context.Context, code string) (*Token, error) {
	return a.requestToken(ctx, url.Values{
		"code":          {code},
		"client_id":     {a.ClientID},
		"client_secret": {a.ClientSecret},
		"redirect_uri":  {a.RedirectURI},
		"grant_type":    {"authorization_code"},
	})
}

// Refresh obtains a fresh access token from a stored refresh token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	return a.requestToken(ctx, url.Values{
		"refresh_token": {refreshToken},
		"client_id":     {a.ClientID},
		"client_secret": {a.ClientSecret},
		"grant_type":    {"refresh_token"},
	})
}

func (a *Auth) requestToken(ctx context.Context, form url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	token.Expiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return &token, nil
}

// EnsureValidToken refreshes the user's access token when it is missing,
// expired, or expiring within five minutes, persisting rotated credentials.
func (a *Auth) EnsureValidToken(ctx context.Context, user *model.User, store TokenStore) error {
	if !user.GoogleConnected {
		return ErrNotConnected
	}
	if user.GoogleTokenExpiry != nil && time.Until(*user.GoogleTokenExpiry) > expiryLeeway {
		return nil
	}
	if user.GoogleRefreshToken == "" {
		return ErrNoRefreshToken
	}

	token, err := a.Refresh(ctx, user.GoogleRefreshToken)
	if err != nil {
		return fmt.Errorf("refresh access token: %w", err)
	}

	user.GoogleAccessToken = token.AccessToken
	if token.RefreshToken != "" {
		user.GoogleRefreshToken = token.RefreshToken
	}
	expiry := token.Expiry
	user.GoogleTokenExpiry = &expiry
	return store.Save(ctx, user)
}

// Profile is the subset of Google userinfo the planner stores.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// UserInfo fetches the Google profile for a freshly exchanged token.
func (a *Auth) UserInfo(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %w", err)
	}
	return &profile, nil
}
