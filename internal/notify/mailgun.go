// AngelaMos | 2026
// mailgun.go

package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MailgunTransport posts form-encoded messages to the Messages API.
type MailgunTransport struct {
	apiKey  string
	domain  string
	baseURL string
	client  *http.Client
}

func NewMailgunTransport(apiKey, domain, baseURL string) *MailgunTransport {
	if baseURL == "" {
		baseURL = "https://api.mailgun.net/v3"
	}
	return &MailgunTransport{
		apiKey:  apiKey,
		domain:  domain,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (t *MailgunTransport) Name() string { return "mailgun" }

func (t *MailgunTransport) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("from", msg.From)
	for _, to := range msg.To {
		form.Add("to", to)
	}
	form.Set("subject", msg.Subject)
	form.Set("html", msg.HTML)
	if msg.Text != "" {
		form.Set("text", msg.Text)
	}
	if msg.ReplyTo != "" {
		form.Set("h:Reply-To", msg.ReplyTo)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", t.baseURL, t.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck // diagnostic only
		return fmt.Errorf("mailgun error %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
