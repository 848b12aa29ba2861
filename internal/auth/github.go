package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const defaultGitHubAPI = "https://api.github.com"

var ErrNoVerifiedEmail = errors.New("github account has no verified email")

// Profile is what we keep from the identity provider.
type Profile struct {
	Email     string
	Name      string
	AvatarURL string
}

type gitHubUser struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type gitHubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// GitHub runs the OAuth code flow against GitHub and resolves the signed-in user's email.
type GitHub struct {
	config  *oauth2.Config
	apiBase string
}

func NewGitHub(clientID, clientSecret, redirectURL string) *GitHub {
	return &GitHub{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		apiBase: defaultGitHubAPI,
	}
}

// WithEndpoints points the flow at other OAuth and API hosts.
func (g *GitHub) WithEndpoints(endpoint oauth2.Endpoint, apiBase string) *GitHub {
	g.config.Endpoint = endpoint
	g.apiBase = strings.TrimRight(apiBase, "/")
	return g
}

func (g *GitHub) Enabled() bool {
	return g.config.ClientID != "" && g.config.ClientSecret != ""
}

func (g *GitHub) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// Exchange trades the callback code for a token and loads the user's profile.
func (g *GitHub) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth exchange: %w", err)
	}
	client := g.config.Client(ctx, tok)

	var user gitHubUser
	if err := g.get(ctx, client, "/user", &user); err != nil {
		return nil, err
	}

	profile := &Profile{Email: user.Email, Name: user.Name, AvatarURL: user.AvatarURL}
	if profile.Name == "" {
		profile.Name = user.Login
	}
	if profile.Email != "" {
		return profile, nil
	}

	// the public profile hides private emails
	var emails []gitHubEmail
	if err := g.get(ctx, client, "/user/emails", &emails); err != nil {
		return nil, err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			profile.Email = e.Email
			return profile, nil
		}
	}
	return nil, ErrNoVerifiedEmail
}

func (g *GitHub) get(ctx context.Context, client *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("github %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github %s: decode: %w", path, err)
	}
	return nil
}

// NewState returns a random value for the OAuth state parameter.
func NewState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
