package creds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Sidecar obtains signed URLs and tokens from a co-located credential
// broker over fixed local endpoints.
type Sidecar struct {
	tokenEndpoint      string
	credentialEndpoint string
	client             *http.Client
}

// NewSidecar builds the sidecar variant. Empty endpoints fall back to
// the fixed local broker address.
func NewSidecar(tokenEndpoint, credentialEndpoint string) *Sidecar {
	if tokenEndpoint == "" {
		tokenEndpoint = DefaultTokenEndpoint
	}
	if credentialEndpoint == "" {
		credentialEndpoint = DefaultCredentialEndpoint
	}
	return &Sidecar{
		tokenEndpoint:      tokenEndpoint,
		credentialEndpoint: credentialEndpoint,
		client:             &http.Client{Timeout: 10 * time.Second},
	}
}

type signRequest struct {
	Bucket  string `json:"bucket"`
	Object  string `json:"object"`
	Method  string `json:"method"`
	Expires int64  `json:"expires"`
}

type signResponse struct {
	URL string `json:"url"`
}

// SignURL asks the broker's credential endpoint to sign one object/method
// pair with an absolute expiry timestamp.
func (s *Sidecar) SignURL(ctx context.Context, bucket, object, method string, expires time.Time) (string, error) {
	payload, err := json.Marshal(signRequest{
		Bucket:  bucket,
		Object:  object,
		Method:  method,
		Expires: expires.Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("creds: encode sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.credentialEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creds: build sign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("creds: sign request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("creds: broker returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var sr signResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("creds: decode sign response: %w", err)
	}
	if sr.URL == "" {
		return "", fmt.Errorf("creds: broker returned no url")
	}

	return sr.URL, nil
}

// TokenSource returns a cached source that exchanges tokens at the
// broker's token endpoint on expiry.
func (s *Sidecar) TokenSource(ctx context.Context) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &sidecarTokenSource{
		ctx:      ctx,
		endpoint: s.tokenEndpoint,
		client:   s.client,
	})
}

type sidecarTokenSource struct {
	ctx      context.Context
	endpoint string
	client   *http.Client
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (t *sidecarTokenSource) Token() (*oauth2.Token, error) {
	req, err := http.NewRequestWithContext(t.ctx, http.MethodPost, t.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creds: build token request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("creds: token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("creds: token endpoint returned %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("creds: decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("creds: token endpoint returned no token")
	}

	tokenType := tr.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tokenType,
		Expiry:      time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}

var _ Provider = (*Sidecar)(nil)
