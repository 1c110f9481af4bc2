package googlecalendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/settings"
)

const (
	calendarAPIBase = "https://www.googleapis.com/calendar/v3"
	tokenEndpoint   = "https://oauth2.googleapis.com/token"

	// refresh slightly before the reported expiry to absorb clock skew
	expiryLeeway = 2 * time.Minute
)

// Client talks to the Google Calendar API with an OAuth token set stored
// in the settings repository, refreshing the access token as needed.
type Client struct {
	clientID     string
	clientSecret string
	tokens       TokenStore
	httpClient   *http.Client
	log          Logger
}

// NewClient creates a calendar client
func NewClient(clientID, clientSecret string, tokens TokenStore, timeout time.Duration, log Logger) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokens:       tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Connected reports whether an OAuth token set is stored
func (c *Client) Connected(ctx context.Context) bool {
	_, err := c.tokens.Get(ctx, settings.KeyGoogleRefreshToken)
	return err == nil
}

// InsertEvent creates an event on the connected calendar and returns its ID
func (c *Client) InsertEvent(ctx context.Context, event *Event) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	calendarID, err := c.tokens.Get(ctx, settings.KeyGoogleCalendarID)
	if err != nil {
		calendarID = "primary"
	}

	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	reqURL := fmt.Sprintf("%s/calendars/%s/events", calendarAPIBase, url.PathEscape(calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", c.disconnect(ctx, resp.StatusCode)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var created createdEvent
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Calendar event created, event_id=%s", created.ID)
	return created.ID, nil
}

// DeleteEvent removes an event from the connected calendar. A 404 or 410
// means the event is already gone and is treated as success.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	calendarID, err := c.tokens.Get(ctx, settings.KeyGoogleCalendarID)
	if err != nil {
		calendarID = "primary"
	}

	reqURL := fmt.Sprintf("%s/calendars/%s/events/%s",
		calendarAPIBase, url.PathEscape(calendarID), url.PathEscape(eventID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound, http.StatusGone:
		c.log.Info("Calendar event deleted, event_id=%s", eventID)
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return c.disconnect(ctx, resp.StatusCode)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

// accessToken returns a valid access token, refreshing through the stored
// refresh token when the cached one is missing or near expiry
func (c *Client) accessToken(ctx context.Context) (string, error) {
	refreshToken, err := c.tokens.Get(ctx, settings.KeyGoogleRefreshToken)
	if errors.Is(err, settings.ErrSettingNotFound) {
		return "", ErrNotConnected
	}
	if err != nil {
		return "", fmt.Errorf("%w: failed to load refresh token: %v", ErrInternal, err)
	}

	accessToken, accessErr := c.tokens.Get(ctx, settings.KeyGoogleAccessToken)
	expiryRaw, expiryErr := c.tokens.Get(ctx, settings.KeyGoogleTokenExpiry)
	if accessErr == nil && expiryErr == nil {
		if expiry, parseErr := time.Parse(time.RFC3339, expiryRaw); parseErr == nil {
			if time.Now().Add(expiryLeeway).Before(expiry) {
				return accessToken, nil
			}
		}
	}

	return c.refresh(ctx, refreshToken)
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint,
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create refresh request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute refresh request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusBadRequest, http.StatusUnauthorized:
		// refresh token revoked; the studio must reconnect the calendar
		return "", c.disconnect(ctx, resp.StatusCode)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d from token endpoint: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", ErrInvalidResponse, err)
	}

	expiry := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	if err := c.tokens.Set(ctx, settings.KeyGoogleAccessToken, token.AccessToken); err != nil {
		c.log.Warn("Failed to cache refreshed access token: %v", err)
	}
	if err := c.tokens.Set(ctx, settings.KeyGoogleTokenExpiry, expiry.Format(time.RFC3339)); err != nil {
		c.log.Warn("Failed to cache access token expiry: %v", err)
	}

	c.log.Debug("Google access token refreshed, expires_in=%s", strconv.Itoa(token.ExpiresIn)+"s")
	return token.AccessToken, nil
}

// disconnect clears the stored token set after an authorization failure
func (c *Client) disconnect(ctx context.Context, statusCode int) error {
	c.log.Error("Google Calendar authorization failed with status %d, clearing stored tokens", statusCode)

	for _, key := range []string{
		settings.KeyGoogleAccessToken,
		settings.KeyGoogleRefreshToken,
		settings.KeyGoogleTokenExpiry,
	} {
		if err := c.tokens.Delete(ctx, key); err != nil {
			c.log.Warn("Failed to clear token key %s: %v", key, err)
		}
	}

	return fmt.Errorf("%w: status %d", ErrUnauthorized, statusCode)
}
