package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultGraphBaseURL = "https://graph.microsoft.com/v1.0"

// meResponse is the subset of the Graph /me profile we read.
type meResponse struct {
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// Me resolves the signed-in user's email via the Graph /me endpoint.
// baseURL overrides the Graph endpoint; pass "" outside tests.
func Me(ctx context.Context, httpClient *http.Client, baseURL string) (string, error) {
	if baseURL == "" {
		baseURL = defaultGraphBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/me", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("graph API request failed: %w", err)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("graph API error %d: %s", resp.StatusCode, string(body))
	}

	var me meResponse
	if err := json.Unmarshal(body, &me); err != nil {
		return "", fmt.Errorf("decoding profile: %w", err)
	}

	email := me.Mail
	if email == "" {
		email = me.UserPrincipalName
	}
	if email == "" {
		return "", fmt.Errorf("profile has no email address")
	}
	return strings.ToLower(email), nil
}
