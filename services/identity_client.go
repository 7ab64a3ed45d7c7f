// contest-platform/services/identity_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"contest-platform/models"
	"contest-platform/utils"
)

// Identity is an account at the external identity provider.
type Identity struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// IdentityProvider is the capability contract against the external
// identity service. IdentityClient implements it over HTTP; tests use
// MockIdentity.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, email, password string) (Identity, error)
	DeleteIdentity(ctx context.Context, accountID string) error
	// ValidateToken resolves an access token to an account id, or
	// models.ErrNotAuthenticated when the token is not accepted.
	ValidateToken(ctx context.Context, accessToken string) (string, error)
}

type IdentityClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewIdentityClient(baseURL, token string) *IdentityClient {
	return &IdentityClient{
		BaseURL: baseURL,
		Token:   token,
		Client:  utils.HTTPClient,
	}
}

var _ IdentityProvider = (*IdentityClient)(nil)

func (c *IdentityClient) do(ctx context.Context, method, path string, payload interface{}) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	return resp.StatusCode, respBody, nil
}

// CreateIdentity registers a new email/password account with the
// identity provider and returns the issued account id.
func (c *IdentityClient) CreateIdentity(ctx context.Context, email, password string) (Identity, error) {
	status, body, err := c.do(ctx, "POST", "/identities", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return Identity{}, fmt.Errorf("identity service unreachable: %w", err)
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
		var out Identity
		if err := json.Unmarshal(body, &out); err != nil {
			return Identity{}, fmt.Errorf("decoding identity response: %w", err)
		}
		return out, nil
	case http.StatusConflict:
		return Identity{}, fmt.Errorf("%w: %s", models.ErrEmailInUse, email)
	case http.StatusUnprocessableEntity:
		return Identity{}, models.ErrWeakCredential
	default:
		log.Printf("IdentityService /identities returned %d: %s", status, string(body))
		return Identity{}, fmt.Errorf("identity creation failed: %d", status)
	}
}

// DeleteIdentity removes an account, used as the compensating action
// when the profile write after a registration fails.
func (c *IdentityClient) DeleteIdentity(ctx context.Context, accountID string) error {
	status, body, err := c.do(ctx, "DELETE", "/identities/"+accountID, nil)
	if err != nil {
		return fmt.Errorf("identity service unreachable: %w", err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		log.Printf("IdentityService DELETE /identities/%s returned %d: %s", accountID, status, string(body))
		return fmt.Errorf("identity deletion failed: %d", status)
	}
	return nil
}

// ValidateToken calls /auth/validate on the identity service.
func (c *IdentityClient) ValidateToken(ctx context.Context, accessToken string) (string, error) {
	status, body, err := c.do(ctx, "POST", "/auth/validate", map[string]string{
		"access_token": accessToken,
	})
	if err != nil {
		return "", fmt.Errorf("identity service unreachable: %w", err)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return "", models.ErrNotAuthenticated
	}
	if status != http.StatusOK {
		log.Printf("IdentityService /auth/validate returned %d: %s", status, string(body))
		return "", fmt.Errorf("token validation failed: %d", status)
	}

	var out struct {
		AccountID string `json:"account_id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decoding validate response: %w", err)
	}
	if out.AccountID == "" {
		return "", models.ErrNotAuthenticated
	}
	return out.AccountID, nil
}
