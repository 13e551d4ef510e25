// AngelaMos | 2026
// renderer.go

package notify

import (
	"embed"
	"fmt"
	"html"
	"time"

	"github.com/osteele/liquid"
)

//go:embed templates/*.liquid
var templateFS embed.FS

var subjects = map[Kind]string{
	KindProductInquiry: "New Product Inquiry: {{ productName }} from {{ name }}",
	KindNormalInquiry:  "New Inquiry: {{ subject }} from {{ name }}",
	KindNewsletter:     "New Newsletter Subscription: {{ email }}",
}

// Renderer turns an Event into subject and HTML body. Templates are
// parsed once at construction; rendering keeps no state between calls.
type Renderer struct {
	bodies   map[Kind]*liquid.Template
	subjects map[Kind]*liquid.Template
}

func NewRenderer() (*Renderer, error) {
	engine := liquid.NewEngine()
	engine.RegisterFilter("escape", html.EscapeString)

	r := &Renderer{
		bodies:   make(map[Kind]*liquid.Template, len(subjects)),
		subjects: make(map[Kind]*liquid.Template, len(subjects)),
	}

	for kind, subject := range subjects {
		src, err := templateFS.ReadFile("templates/" + string(kind) + ".liquid")
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", kind, err)
		}

		body, err := engine.ParseString(string(src))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", kind, err)
		}
		r.bodies[kind] = body

		subj, err := engine.ParseString(subject)
		if err != nil {
			return nil, fmt.Errorf("parse subject %s: %w", kind, err)
		}
		r.subjects[kind] = subj
	}

	return r, nil
}

func (r *Renderer) Render(ev Event) (subject, body string, err error) {
	bodyTpl, ok := r.bodies[ev.Kind]
	if !ok {
		return "", "", fmt.Errorf("unknown notification kind %q", ev.Kind)
	}

	bindings := make(map[string]any, len(ev.Data)+1)
	for k, v := range ev.Data {
		bindings[k] = v
	}
	if _, ok := bindings["submittedAt"]; !ok {
		bindings["submittedAt"] = time.Now().UTC().Format(time.RFC1123)
	}

	subject, err = r.subjects[ev.Kind].RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}

	body, err = bodyTpl.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}

	return subject, body, nil
}
