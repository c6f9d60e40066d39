package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client triggers the external onboarding workflow service with a JSON
// webhook. Delivery is fire-and-forget: the caller runs Trigger in a
// goroutine and signup never waits on it.
type Client struct {
	url   string
	token string
	http  *http.Client
}

func NewClient(url, token string) *Client {
	return &Client{
		url:   url,
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Enabled() bool { return c.url != "" }

type OnboardingEvent struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

func (c *Client) TriggerOnboarding(ctx context.Context, ev OnboardingEvent) error {
	if !c.Enabled() {
		return nil
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("workflow trigger: unexpected status %d", resp.StatusCode)
	}
	return nil
}
