// Package linkedin brokers the LinkedIn OAuth flow: authorization redirect,
// code-for-token exchange, and OpenID userinfo retrieval. Single-attempt
// plumbing; timeouts are caller-supplied through context.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Default LinkedIn endpoints.
const (
	DefaultAuthBaseURL = "https://www.linkedin.com/oauth/v2"
	DefaultAPIBaseURL  = "https://api.linkedin.com/v2"
	oauthScopes        = "openid profile email"
)

// OAuthError indicates a failure talking to LinkedIn.
type OAuthError struct {
	Step    string
	Status  int
	Message string
	Cause   error
}

func (e *OAuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("linkedin %s failed: %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("linkedin %s failed: %s", e.Step, e.Message)
}

func (e *OAuthError) Unwrap() error {
	return e.Cause
}

// UserInfo is the subset of the OpenID userinfo claims this backend needs.
type UserInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Client performs the OAuth exchange for one registered LinkedIn application.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	authBaseURL  string
	apiBaseURL   string
	httpClient   *http.Client
}

// NewClient creates an OAuth client with the default LinkedIn endpoints.
func NewClient(clientID, clientSecret, redirectURI string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		authBaseURL:  DefaultAuthBaseURL,
		apiBaseURL:   DefaultAPIBaseURL,
		httpClient:   &http.Client{},
	}
}

// WithBaseURLs overrides the LinkedIn endpoints. Used in tests.
func (c *Client) WithBaseURLs(authBase, apiBase string) *Client {
	c.authBaseURL = strings.TrimSuffix(authBase, "/")
	c.apiBaseURL = strings.TrimSuffix(apiBase, "/")
	return c
}

// AuthURL builds the authorization redirect target for the OAuth flow.
func (c *Client) AuthURL() string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", oauthScopes)
	return c.authBaseURL + "/authorization?" + params.Encode()
}

// tokenResponse is LinkedIn's access-token reply.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", &OAuthError{Step: "token exchange", Message: "no code provided"}
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authBaseURL+"/accessToken", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &OAuthError{Step: "token exchange", Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &OAuthError{Step: "token exchange", Message: "transport failure", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &OAuthError{Step: "token exchange", Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &OAuthError{
			Step:    "token exchange",
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", &OAuthError{Step: "token exchange", Message: "malformed token response", Cause: err}
	}
	if token.AccessToken == "" {
		return "", &OAuthError{Step: "token exchange", Message: "no access token in response"}
	}

	return token.AccessToken, nil
}

// FetchUserInfo retrieves the OpenID userinfo claims for an access token.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/userinfo", nil)
	if err != nil {
		return nil, &OAuthError{Step: "userinfo", Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &OAuthError{Step: "userinfo", Message: "transport failure", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &OAuthError{Step: "userinfo", Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &OAuthError{
			Step:    "userinfo",
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("status %d", resp.StatusCode),
		}
	}

	var info UserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, &OAuthError{Step: "userinfo", Message: "malformed userinfo response", Cause: err}
	}
	if info.Sub == "" {
		return nil, &OAuthError{Step: "userinfo", Message: "no subject in userinfo"}
	}

	return &info, nil
}
