// AngelaMos | 2026
// sendgrid.go

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"time"
)

// SendGridTransport posts to the v3 Mail Send API.
type SendGridTransport struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewSendGridTransport(apiKey, baseURL string) *SendGridTransport {
	if baseURL == "" {
		baseURL = "https://api.sendgrid.com/v3"
	}
	return &SendGridTransport{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (t *SendGridTransport) Name() string { return "sendgrid" }

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPayload struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress   `json:"from"`
	ReplyTo *sendGridAddress  `json:"reply_to,omitempty"`
	Subject string            `json:"subject"`
	Content []sendGridContent `json:"content"`
}

func (t *SendGridTransport) Send(ctx context.Context, msg Message) error {
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return fmt.Errorf("parse from address: %w", err)
	}

	var payload sendGridPayload
	payload.Personalizations = make([]struct {
		To []sendGridAddress `json:"to"`
	}, 1)
	for _, to := range msg.To {
		payload.Personalizations[0].To = append(
			payload.Personalizations[0].To,
			sendGridAddress{Email: to},
		)
	}
	payload.From = sendGridAddress{Email: from.Address, Name: from.Name}
	payload.Subject = msg.Subject
	if msg.Text != "" {
		payload.Content = append(payload.Content, sendGridContent{Type: "text/plain", Value: msg.Text})
	}
	payload.Content = append(payload.Content, sendGridContent{Type: "text/html", Value: msg.HTML})
	if msg.ReplyTo != "" {
		payload.ReplyTo = &sendGridAddress{Email: msg.ReplyTo}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck // diagnostic only
		return fmt.Errorf("sendgrid error %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
