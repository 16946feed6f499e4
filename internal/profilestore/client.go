// Package profilestore provides a typed client for the external user-profile
// canister. The canister is treated as an opaque collaborator: this package
// translates between application records and the canister's wire encoding and
// maps its failures into a small error taxonomy.
package profilestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/worktrust/backend/internal/types"
)

// Store is the set of profile operations the rest of the backend depends on.
type Store interface {
	RegisterUser(ctx context.Context, principal, name, skillLevel string) error
	AddPosition(ctx context.Context, principal string, position types.Position) error
	GetProfile(ctx context.Context, principal string) (*types.UserProfile, error)
	ListAllProfiles(ctx context.Context) ([]ProfileEntry, error)
	VerifyPosition(ctx context.Context, target string, index int, field string, value bool) error
}

// ProfileEntry pairs a principal with its profile in listings.
type ProfileEntry struct {
	Principal string             `json:"principal"`
	Profile   *types.UserProfile `json:"profile"`
}

// errCodeAlreadyRegistered is the canister's duplicate-registration reply code.
const errCodeAlreadyRegistered = "already_registered"

// CanisterClient implements Store against the canister HTTP gateway.
type CanisterClient struct {
	host       string
	canisterID string
	httpClient *http.Client
}

// NewCanisterClient creates a client for the canister at the given gateway
// host. The http.Client carries no timeout of its own; callers bound each
// operation through context.
func NewCanisterClient(host, canisterID string) *CanisterClient {
	return &CanisterClient{
		host:       strings.TrimSuffix(host, "/"),
		canisterID: canisterID,
		httpClient: &http.Client{},
	}
}

// callRequest is the gateway envelope for a canister method invocation.
type callRequest struct {
	Method string          `json:"method"`
	Caller string          `json:"caller,omitempty"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// callResponse is the gateway reply envelope.
type callResponse struct {
	Ok  json.RawMessage `json:"ok,omitempty"`
	Err string          `json:"err,omitempty"`
}

// call performs one canister method invocation. Any transport or gateway
// failure maps to UnavailableError; a duplicate-registration reply maps to
// AlreadyRegisteredError so callers never have to string-match.
func (c *CanisterClient) call(ctx context.Context, caller, method string, args any) (json.RawMessage, error) {
	var rawArgs json.RawMessage
	if args != nil {
		encoded, err := json.Marshal(args)
		if err != nil {
			return nil, &UnavailableError{Method: method, Message: "failed to encode arguments", Cause: err}
		}
		rawArgs = encoded
	}

	body, err := json.Marshal(callRequest{Method: method, Caller: caller, Args: rawArgs})
	if err != nil {
		return nil, &UnavailableError{Method: method, Message: "failed to encode request", Cause: err}
	}

	url := fmt.Sprintf("%s/canister/%s/call", c.host, c.canisterID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &UnavailableError{Method: method, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Method: method, Message: "transport failure", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Method: method, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UnavailableError{
			Method:  method,
			Message: fmt.Sprintf("gateway returned status %d", resp.StatusCode),
		}
	}

	var reply callResponse
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return nil, &UnavailableError{Method: method, Message: "malformed gateway response", Cause: err}
	}

	if reply.Err != "" {
		if reply.Err == errCodeAlreadyRegistered {
			return nil, &AlreadyRegisteredError{Principal: caller}
		}
		return nil, &UnavailableError{Method: method, Message: "canister error: " + reply.Err}
	}

	return reply.Ok, nil
}

// RegisterUser creates the profile skeleton for a principal.
func (c *CanisterClient) RegisterUser(ctx context.Context, principal, name, skillLevel string) error {
	args := map[string]string{"name": name, "skillLevel": skillLevel}
	_, err := c.call(ctx, principal, "registerUser", args)
	return err
}

// AddPosition appends a position to the caller's profile.
func (c *CanisterClient) AddPosition(ctx context.Context, principal string, position types.Position) error {
	_, err := c.call(ctx, principal, "addPosition", positionToWire(position))
	return err
}

// GetProfile reads back the caller's profile.
func (c *CanisterClient) GetProfile(ctx context.Context, principal string) (*types.UserProfile, error) {
	raw, err := c.call(ctx, principal, "getMyProfile", nil)
	if err != nil {
		return nil, err
	}

	var profile wireProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, &UnavailableError{Method: "getMyProfile", Message: "malformed profile payload", Cause: err}
	}
	return profileFromWire(profile), nil
}

// ListAllProfiles returns every stored profile keyed by principal.
func (c *CanisterClient) ListAllProfiles(ctx context.Context) ([]ProfileEntry, error) {
	raw, err := c.call(ctx, "", "getAllUsers", nil)
	if err != nil {
		return nil, err
	}

	var entries []wireProfileEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &UnavailableError{Method: "getAllUsers", Message: "malformed listing payload", Cause: err}
	}

	result := make([]ProfileEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, ProfileEntry{
			Principal: entry.Principal,
			Profile:   profileFromWire(entry.Profile),
		})
	}
	return result, nil
}

// VerifyPosition marks one position on the target profile as verified or
// reviewed. Field must be "verified" or "reviewed".
func (c *CanisterClient) VerifyPosition(ctx context.Context, target string, index int, field string, value bool) error {
	args := map[string]any{
		"principal": target,
		"index":     index,
		"field":     field,
		"value":     value,
	}
	_, err := c.call(ctx, "", "verifyPosition", args)
	return err
}
