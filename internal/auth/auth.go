// Package auth runs the OAuth2 installed-app flow against Google and builds
// the HTTP client used for Fitness API calls.
package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi/transport"

	"github.com/sstent/gfitweight/internal/config"
)

// ErrAuthorizationFailed is returned when the code cannot be read or exchanged.
var ErrAuthorizationFailed = errors.New("authorization failed")

// Authorizer holds the OAuth2 client configuration for one run.
type Authorizer struct {
	cfg    *oauth2.Config
	apiKey string
	state  string
}

// New creates an Authorizer for the given secrets and scopes.
func New(s *config.Secrets, scopes ...string) *Authorizer {
	return &Authorizer{
		cfg: &oauth2.Config{
			ClientID:     s.ClientID,
			ClientSecret: s.ClientSecret,
			RedirectURL:  s.RedirectURI,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		apiKey: s.APIKey,
		state:  uuid.NewString(),
	}
}

// WithEndpoint overrides the provider endpoint.
func (a *Authorizer) WithEndpoint(ep oauth2.Endpoint) *Authorizer {
	a.cfg.Endpoint = ep
	return a
}

// AuthCodeURL returns the URL the operator opens to grant access.
func (a *Authorizer) AuthCodeURL() string {
	return a.cfg.AuthCodeURL(a.state, oauth2.AccessTypeOffline)
}

// State returns the nonce embedded in AuthCodeURL.
func (a *Authorizer) State() string {
	return a.state
}

// ReadCode reads one line from r. The line may be a bare authorization code or
// the full redirect URL the browser landed on.
func (a *Authorizer) ReadCode(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: failed to read code: %v", ErrAuthorizationFailed, err)
	}
	return a.ParseCode(line)
}

// ParseCode extracts the authorization code from operator input.
func (a *Authorizer) ParseCode(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: no authorization code given", ErrAuthorizationFailed)
	}
	if !strings.Contains(input, "://") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("%w: invalid redirect URL: %v", ErrAuthorizationFailed, err)
	}
	q := u.Query()
	if msg := q.Get("error"); msg != "" {
		return "", fmt.Errorf("%w: %s", ErrAuthorizationFailed, msg)
	}
	if st := q.Get("state"); st != "" && st != a.state {
		return "", fmt.Errorf("%w: state mismatch", ErrAuthorizationFailed)
	}
	code := q.Get("code")
	if code == "" {
		return "", fmt.Errorf("%w: redirect URL has no code parameter", ErrAuthorizationFailed)
	}
	return code, nil
}

// Exchange trades the code for a token. Provider errors are kept verbatim.
func (a *Authorizer) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: no authorization code given", ErrAuthorizationFailed)
	}
	tok, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}
	return tok, nil
}

// HTTPClient returns a client that authorizes requests with tok and, when an
// API key is configured, appends it to each request.
func (a *Authorizer) HTTPClient(ctx context.Context, tok *oauth2.Token) *http.Client {
	c := a.cfg.Client(ctx, tok)
	if a.apiKey != "" {
		c.Transport = &transport.APIKey{Key: a.apiKey, Transport: c.Transport}
	}
	return c
}
