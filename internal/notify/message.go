// AngelaMos | 2026
// message.go

package notify

import (
	"context"
	"strings"
)

type Kind string

const (
	KindProductInquiry Kind = "product_inquiry"
	KindNormalInquiry  Kind = "normal_inquiry"
	KindNewsletter     Kind = "newsletter_subscription"
)

// Event is a submission worth telling the shop about. Data feeds the
// template for Kind; ReplyTo is the customer's address.
type Event struct {
	Kind    Kind
	ReplyTo string
	Data    map[string]any
}

// Message is what a transport sends. Kind and Fields carry the event
// content for channels that do not render HTML.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	Kind    Kind
	Fields  map[string]any
}

// Transport delivers one message. Implementations must honor ctx
// cancellation; the dispatcher bounds each attempt with a deadline.
type Transport interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

type Result struct {
	Delivered bool   `json:"delivered"`
	Channel   string `json:"channel"`
}

// RedactEmail keeps the first two characters of the local part.
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}

func redactAll(emails []string) []string {
	out := make([]string, len(emails))
	for i, e := range emails {
		out[i] = RedactEmail(e)
	}
	return out
}
