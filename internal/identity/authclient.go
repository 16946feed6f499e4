package identity

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// ProviderClient performs the session-establishment handshake against the
// external identity provider: it presents the derived principal together with
// a signed nonce proving possession of the derived key.
type ProviderClient struct {
	providerURL string
	httpClient  *http.Client
}

// NewProviderClient creates a handshake client for the given provider URL.
// Timeouts are caller-supplied through context.
func NewProviderClient(providerURL string) *ProviderClient {
	return &ProviderClient{
		providerURL: providerURL,
		httpClient:  &http.Client{},
	}
}

// handshakeRequest is the session-establishment payload.
type handshakeRequest struct {
	Principal string `json:"principal"`
	PublicKey string `json:"publicKey"`
	Nonce     string `json:"nonce"`
	Signature string `json:"signature"`
}

// Establish presents the derived identity to the provider. Any failure here
// is a HandshakeError, never a derivation failure.
func (c *ProviderClient) Establish(ctx context.Context, id *Identity) error {
	nonce := uuid.NewString()

	payload := handshakeRequest{
		Principal: id.Principal,
		PublicKey: base64.StdEncoding.EncodeToString(id.PublicKey),
		Nonce:     nonce,
		Signature: base64.StdEncoding.EncodeToString(id.Sign([]byte(nonce))),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &HandshakeError{Principal: id.Principal, Message: "failed to encode handshake", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.providerURL, bytes.NewReader(body))
	if err != nil {
		return &HandshakeError{Principal: id.Principal, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &HandshakeError{Principal: id.Principal, Message: "transport failure", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &HandshakeError{
			Principal: id.Principal,
			Message:   fmt.Sprintf("provider returned status %d", resp.StatusCode),
		}
	}

	return nil
}
