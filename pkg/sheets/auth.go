package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

const (
	spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"
	jwtGrantType     = "urn:ietf:params:oauth:grant-type:jwt-bearer"
)

// TokenSource supplies bearer tokens for Sheets API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token, for tests.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// serviceAccountKey is the subset of a Google service-account JSON key
// needed for the JWT grant.
type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// ServiceAccountSource exchanges a signed service-account JWT for an access
// token and caches it until shortly before expiry.
type ServiceAccountSource struct {
	key  serviceAccountKey
	http *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewServiceAccountSource loads a service-account key file.
func NewServiceAccountSource(path string) (*ServiceAccountSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "sheets: read service account key")
	}

	var key serviceAccountKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, eris.Wrap(err, "sheets: parse service account key")
	}
	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, eris.New("sheets: service account key missing client_email or private_key")
	}
	if key.TokenURI == "" {
		key.TokenURI = "https://oauth2.googleapis.com/token"
	}

	return &ServiceAccountSource{
		key:  key,
		http: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (s *ServiceAccountSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expiry) {
		return s.token, nil
	}

	assertion, err := s.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", jwtGrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.key.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "sheets: create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "sheets: token exchange")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "sheets: read token response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("sheets: token exchange status %d: %s", resp.StatusCode, string(body))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", eris.Wrap(err, "sheets: parse token response")
	}
	if tok.AccessToken == "" {
		return "", eris.New("sheets: token response missing access_token")
	}

	s.token = tok.AccessToken
	// Refresh a minute early so in-flight calls never carry a dead token.
	s.expiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)

	return s.token, nil
}

func (s *ServiceAccountSource) signAssertion() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(s.key.PrivateKey))
	if err != nil {
		return "", eris.Wrap(err, "sheets: parse private key")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   s.key.ClientEmail,
		"scope": spreadsheetScope,
		"aud":   s.key.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", eris.Wrap(err, "sheets: sign assertion")
	}
	return assertion, nil
}
