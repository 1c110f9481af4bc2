package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const graphAPIBase = "https://graph.facebook.com/v17.0"

// Client sends text messages through the WhatsApp Business (Graph) API
type Client struct {
	accessToken   string
	phoneNumberID string
	httpClient    *http.Client
	log           Logger
}

// NewClient creates a WhatsApp client. Missing credentials build a disabled
// client whose SendText returns ErrDisabled.
func NewClient(accessToken, phoneNumberID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled reports whether the client has credentials
func (c *Client) Enabled() bool {
	return c.accessToken != "" && c.phoneNumberID != ""
}

// SendText sends one text message. The recipient must be in international
// format with a leading plus, e.g. +5544999999999.
func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	if !strings.HasPrefix(to, "+") || len(to) < 10 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, to)
	}

	payload := sendMessageRequest{
		MessagingProduct: "whatsapp",
		To:               digitsOnly(to),
		Type:             "text",
		Text:             messageText{Body: body},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/%s/messages", graphAPIBase, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	messageID := ""
	if len(result.Messages) > 0 {
		messageID = result.Messages[0].ID
	}

	c.log.Info("WhatsApp message sent to %s, message_id=%s", to, messageID)
	return messageID, nil
}

// digitsOnly strips everything but digits, which is what the Graph API expects
func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
