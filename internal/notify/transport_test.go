// AngelaMos | 2026
// transport_test.go

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyurm111/eloska-luxe-showcase/internal/config"
)

func sampleMessage() Message {
	return Message{
		From:    "Eloska <no-reply@eloska.com>",
		To:      []string{"owner@eloska.com", "ops@eloska.com"},
		ReplyTo: "customer@example.com",
		Subject: "New Inquiry: Hello from Asha",
		HTML:    "<p>Hello</p>",
	}
}

func TestSendGridTransport(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	tr := NewSendGridTransport("sg-key", srv.URL)
	require.NoError(t, tr.Send(context.Background(), sampleMessage()))

	assert.Equal(t, "New Inquiry: Hello from Asha", got["subject"])
	from, ok := got["from"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "no-reply@eloska.com", from["email"])
	assert.Equal(t, "Eloska", from["name"])
	replyTo, ok := got["reply_to"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "customer@example.com", replyTo["email"])
}

func TestSendGridTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	err := NewSendGridTransport("wrong", srv.URL).Send(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestMailgunTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mg.eloska.com/messages", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "mg-key", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, []string{"owner@eloska.com", "ops@eloska.com"}, r.PostForm["to"])
		assert.Equal(t, "customer@example.com", r.PostForm.Get("h:Reply-To"))
		assert.Equal(t, "<p>Hello</p>", r.PostForm.Get("html"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewMailgunTransport("mg-key", "mg.eloska.com", srv.URL)
	require.NoError(t, tr.Send(context.Background(), sampleMessage()))
}

func TestMailgunTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewMailgunTransport("k", "d", srv.URL).Send(context.Background(), sampleMessage())
	assert.Error(t, err)
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(
	_ context.Context,
	in *sesv2.SendEmailInput,
	_ ...func(*sesv2.Options),
) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{}, nil
}

func TestSESTransport(t *testing.T) {
	fake := &fakeSES{}
	tr := &SESTransport{client: fake}

	require.NoError(t, tr.Send(context.Background(), sampleMessage()))
	require.NotNil(t, fake.input)
	assert.Equal(t, "Eloska <no-reply@eloska.com>", *fake.input.FromEmailAddress)
	assert.Equal(t, []string{"owner@eloska.com", "ops@eloska.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, []string{"customer@example.com"}, fake.input.ReplyToAddresses)
	assert.Equal(t, "<p>Hello</p>", *fake.input.Content.Simple.Body.Html.Data)
	assert.Nil(t, fake.input.Content.Simple.Body.Text)

	fake.err = errors.New("throttled")
	assert.Error(t, tr.Send(context.Background(), sampleMessage()))
}

func TestBuildMIME(t *testing.T) {
	msg := sampleMessage()
	msg.Subject = "Café order\r\nBcc: victim@example.com"
	msg.Text = "plain"

	raw, err := buildMIME(msg)
	require.NoError(t, err)
	s := string(raw)

	assert.Contains(t, s, "To: owner@eloska.com, ops@eloska.com\r\n")
	assert.Contains(t, s, "Reply-To: customer@example.com\r\n")
	assert.Contains(t, s, "Subject: =?utf-8?q?")
	assert.NotContains(t, s, "\r\nBcc:")
	assert.Contains(t, s, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, s, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, s, "MIME-Version: 1.0\r\n")
	assert.True(t, strings.HasSuffix(s, "--\r\n"))
}

func TestSMTPTransportRejectsBadFrom(t *testing.T) {
	tr := NewSMTPTransport("smtp", "127.0.0.1", 1, "", "", SMTPStartTLS)
	msg := sampleMessage()
	msg.From = "not an address"

	assert.Error(t, tr.Send(context.Background(), msg))
}

func TestBuildTransportsOrder(t *testing.T) {
	mail := config.MailConfig{
		SMTP: config.SMTPConfig{
			Host:     "smtp.example.com",
			Port:     587,
			AltPort:  465,
			User:     "u",
			Password: "p",
		},
		SendGrid: config.SendGridConfig{APIKey: "sg"},
		Mailgun:  config.MailgunConfig{APIKey: "mg", Domain: "mg.example.com"},
	}

	transports, err := BuildTransports(context.Background(), mail, config.AWSConfig{})
	require.NoError(t, err)

	names := make([]string, len(transports))
	for i, tr := range transports {
		names[i] = tr.Name()
	}
	assert.Equal(t, []string{"smtp", "smtp-tls", "sendgrid", "mailgun"}, names)
}

func TestBuildTransportsSkipsUnconfigured(t *testing.T) {
	mail := config.MailConfig{
		SMTP:    config.SMTPConfig{Host: "smtp.example.com", Port: 587},
		Mailgun: config.MailgunConfig{APIKey: "mg"},
	}

	transports, err := BuildTransports(context.Background(), mail, config.AWSConfig{})
	require.NoError(t, err)
	assert.Empty(t, transports)
}
