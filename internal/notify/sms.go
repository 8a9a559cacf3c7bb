package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lshmam/neucler-square-sub000/internal/config"
)

// SMSClient delivers messages through an HTTP SMS gateway.
// The gateway expects a form-encoded POST per account, in the style of
// the major messaging providers.
type SMSClient struct {
	client    *http.Client
	baseURL   string
	accountID string
	apiKey    string
	from      string
}

// NewSMSClient creates an SMSClient for the given gateway and account.
func NewSMSClient(baseURL, accountID, apiKey, from string) *SMSClient {
	return &SMSClient{
		client: &http.Client{
			Timeout: config.SMSTimeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		accountID: accountID,
		apiKey:    apiKey,
		from:      from,
	}
}

// Send posts one message to the gateway. Non-2xx responses are errors;
// the caller decides whether they matter (the dispatcher swallows them).
func (c *SMSClient) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/accounts/%s/messages", c.baseURL, c.accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountID, c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("SMS gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}
	return nil
}
