package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google Sign-In ID tokens against the tokeninfo
// endpoint.
type GoogleVerifier struct {
	clientID   string
	endpoint   string
	httpClient *http.Client
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID:   clientID,
		endpoint:   tokenInfoURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithEndpoint overrides the tokeninfo URL. Used by tests.
func (v *GoogleVerifier) WithEndpoint(u string) *GoogleVerifier {
	v.endpoint = u
	return v
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*domain.GoogleClaims, error) {
	u := fmt.Sprintf("%s?id_token=%s", v.endpoint, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("google token rejected (status %d)", resp.StatusCode)
	}

	var payload struct {
		Aud           string `json:"aud"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		GivenName     string `json:"given_name"`
		FamilyName    string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if v.clientID != "" && payload.Aud != v.clientID {
		return nil, fmt.Errorf("google token audience mismatch")
	}
	if payload.Email == "" || payload.EmailVerified != "true" {
		return nil, fmt.Errorf("google token has no verified email")
	}

	return &domain.GoogleClaims{
		Email:      payload.Email,
		GivenName:  payload.GivenName,
		FamilyName: payload.FamilyName,
	}, nil
}
