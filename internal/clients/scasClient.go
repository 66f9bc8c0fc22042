package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cache "github.com/RobsonDevCode/vareport/internal/caching"
	scasmodels "github.com/RobsonDevCode/vareport/internal/clients/models/scas"
	"github.com/RobsonDevCode/vareport/internal/configuration"
	"github.com/sony/gobreaker"
)

const accessTokenKey = "scas-access-token"

// tokens are dropped from the cache this long before SCAS expires them
const expirySlack = 10 * time.Second

type ScasClientService interface {
	GetOfflineToken(ctx context.Context, username string, password string) (string, error)
	RefreshAccessToken(ctx context.Context, offlineToken string) (string, error)
	ValidateToken(ctx context.Context, accessToken string) (bool, error)
	SearchStakoCode(ctx context.Context, accessToken string, artifact string, version string) (string, error)
}

// RequestError is returned when SCAS could not be reached at all.
type RequestError struct {
	Url string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("error connecting to '%s': %v", e.Url, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// TokenError is returned when SCAS answers a token request with anything
// but 200.
type TokenError struct {
	StatusCode int
	AuthError  scasmodels.AuthenticationError
	Body       string
}

func (e *TokenError) Error() string {
	if e.AuthError.Error != "" {
		return fmt.Sprintf("error '%s' on retrieving token. %s", e.AuthError.Error, e.AuthError.ErrorDescription)
	}
	return fmt.Sprintf("error retrieving token, status code: %d, response: %s", e.StatusCode, e.Body)
}

type ScasClient struct {
	client   *http.Client
	cb       *gobreaker.CircuitBreaker
	settings configuration.ScasClientSettings
	cache    *cache.Cache
}

func NewScasClient(config *configuration.Config, cache *cache.Cache, checkCertificate bool) (*ScasClient, error) {
	if _, err := url.Parse(config.ScasClientSettings.BaseUrl); err != nil {
		return nil, fmt.Errorf("error parsing base url to a url type, %w", err)
	}

	client := &http.Client{
		Timeout: config.ScasClientSettings.Timeout(),
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig:     &tls.Config{InsecureSkipVerify: !checkCertificate},
		},
	}

	cbSettings := gobreaker.Settings{
		Name:        "scas-client",
		MaxRequests: 5,
		Interval:    3 * time.Second,
		Timeout:     20 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a rejected token is an answer, not an outage
		IsSuccessful: func(err error) bool {
			var tokenErr *TokenError
			return err == nil || errors.As(err, &tokenErr)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			fmt.Printf("Circuit breaker state changed from %v to %v\n", from, to)
		},
	}

	return &ScasClient{
		client:   client,
		cb:       gobreaker.NewCircuitBreaker(cbSettings),
		settings: config.ScasClientSettings,
		cache:    cache,
	}, nil
}

// GetOfflineToken exchanges user credentials for an offline (refresh) token.
func (c *ScasClient) GetOfflineToken(ctx context.Context, username string, password string) (string, error) {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {c.settings.ClientId},
		"scope":      {"offline_access"},
		"username":   {username},
		"password":   {password},
	}

	token, err := c.requestToken(ctx, form)
	if err != nil {
		return "", err
	}

	return token.RefreshToken, nil
}

// RefreshAccessToken trades the offline token for an access token, reusing
// the one already obtained while it is still valid.
func (c *ScasClient) RefreshAccessToken(ctx context.Context, offlineToken string) (string, error) {
	value, err := c.cache.GetOrCreate(accessTokenKey, func(entry *cache.CacheEntry) (interface{}, error) {
		form := url.Values{
			"refresh_token": {offlineToken},
			"client_id":     {c.settings.ClientId},
			"grant_type":    {"refresh_token"},
		}

		token, err := c.requestToken(ctx, form)
		if err != nil {
			return nil, err
		}

		if token.ExpiresIn > 0 {
			entry.Expiration = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - expirySlack)
		}

		return token.AccessToken, nil
	})
	if err != nil {
		return "", err
	}

	accessToken, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("unexpected response type when converting access token")
	}

	return accessToken, nil
}

func (c *ScasClient) requestToken(ctx context.Context, form url.Values) (scasmodels.TokenResponse, error) {
	tokenUrl := c.settings.TokenUrl()

	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenUrl, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, fmt.Errorf("failed to create http request: %w", err)
		}

		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		request.Header.Set("Accept", "application/json")

		response, err := c.client.Do(request)
		if err != nil {
			return nil, &RequestError{Url: tokenUrl, Err: err}
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, handleTokenError(response)
		}

		var token scasmodels.TokenResponse
		if err := json.NewDecoder(response.Body).Decode(&token); err != nil {
			return nil, fmt.Errorf("error reading token response: %w", err)
		}

		return token, nil
	})
	if err != nil {
		return scasmodels.TokenResponse{}, asRequestError(tokenUrl, err)
	}

	token, ok := cbResult.(scasmodels.TokenResponse)
	if !ok {
		return scasmodels.TokenResponse{}, fmt.Errorf("unexpected response type when converting response")
	}

	return token, nil
}

// ValidateToken reports whether SCAS still accepts accessToken.
func (c *ScasClient) ValidateToken(ctx context.Context, accessToken string) (bool, error) {
	userInfoUrl := c.settings.UserInfoUrl()

	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoUrl, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create http request: %w", err)
		}

		request.Header.Set("Authorization", "Bearer "+accessToken)

		response, err := c.client.Do(request)
		if err != nil {
			return nil, &RequestError{Url: userInfoUrl, Err: err}
		}
		defer response.Body.Close()
		io.Copy(io.Discard, response.Body)

		return response.StatusCode == http.StatusOK, nil
	})
	if err != nil {
		return false, asRequestError(userInfoUrl, err)
	}

	valid, ok := cbResult.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected response type when converting response")
	}

	return valid, nil
}

// SearchStakoCode returns the STAKO level of the first component matching
// artifact and version, or StakoNotAvailable.
func (c *ScasClient) SearchStakoCode(ctx context.Context, accessToken string, artifact string, version string) (string, error) {
	searchUrl := c.buildSearchQuery(artifact, version)

	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, searchUrl, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create http request: %w", err)
		}

		request.Header.Set("Authorization", "Bearer "+accessToken)
		request.Header.Set("Accept", "application/json")

		response, err := c.client.Do(request)
		if err != nil {
			return nil, &RequestError{Url: searchUrl, Err: err}
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return scasmodels.StakoNotAvailable, nil
		}

		var result scasmodels.ComponentSearchResponse
		if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("error reading component search response: %w", err)
		}

		if len(result.Content) == 0 {
			return scasmodels.StakoNotAvailable, nil
		}

		return result.Content[0].StakoCode, nil
	})
	if err != nil {
		return "", asRequestError(searchUrl, err)
	}

	stakoCode, ok := cbResult.(string)
	if !ok {
		return "", fmt.Errorf("unexpected response type when converting response")
	}

	return stakoCode, nil
}

func (c *ScasClient) buildSearchQuery(artifact string, version string) string {
	var urlBuilder strings.Builder
	urlBuilder.WriteString(c.settings.SearchUrl())
	urlBuilder.WriteString("?size=1")
	urlBuilder.WriteString("&filter=compName,fts,")
	urlBuilder.WriteString(url.QueryEscape(artifact))
	urlBuilder.WriteString("&filter=compVersion,NTXEQ,")
	urlBuilder.WriteString(url.QueryEscape(version))

	return urlBuilder.String()
}

func handleTokenError(response *http.Response) error {
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read token error status code %d: %w", response.StatusCode, err)
	}

	tokenErr := &TokenError{StatusCode: response.StatusCode, Body: string(body)}
	// SCAS does not always answer with json, the raw body is kept for those
	json.Unmarshal(body, &tokenErr.AuthError)

	return tokenErr
}

// asRequestError turns an open circuit into the same error a failed
// connection gives.
func asRequestError(target string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &RequestError{Url: target, Err: err}
	}
	return err
}
