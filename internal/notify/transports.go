// AngelaMos | 2026
// transports.go

package notify

import (
	"context"
	"fmt"

	"github.com/keyurm111/eloska-luxe-showcase/internal/config"
	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
)

// BuildTransports returns the configured channels in fallback order:
// SMTP on the STARTTLS port, SMTP on the implicit TLS port, SendGrid,
// Mailgun, then SES. Channels without credentials are left out.
func BuildTransports(
	ctx context.Context,
	mail config.MailConfig,
	awsCfg config.AWSConfig,
) ([]Transport, error) {
	var transports []Transport

	if mail.SMTP.Enabled() {
		transports = append(transports, NewSMTPTransport(
			"smtp",
			mail.SMTP.Host,
			mail.SMTP.Port,
			mail.SMTP.User,
			mail.SMTP.Password,
			SMTPStartTLS,
		))

		if mail.SMTP.AltPort > 0 && mail.SMTP.AltPort != mail.SMTP.Port {
			transports = append(transports, NewSMTPTransport(
				"smtp-tls",
				mail.SMTP.Host,
				mail.SMTP.AltPort,
				mail.SMTP.User,
				mail.SMTP.Password,
				SMTPImplicitTLS,
			))
		}
	}

	if mail.SendGrid.APIKey != "" {
		transports = append(transports, NewSendGridTransport(
			mail.SendGrid.APIKey,
			mail.SendGrid.BaseURL,
		))
	}

	if mail.Mailgun.APIKey != "" && mail.Mailgun.Domain != "" {
		transports = append(transports, NewMailgunTransport(
			mail.Mailgun.APIKey,
			mail.Mailgun.Domain,
			mail.Mailgun.BaseURL,
		))
	}

	if mail.SES.Enabled {
		cfg, err := core.LoadAWSConfig(ctx, awsCfg)
		if err != nil {
			return nil, fmt.Errorf("ses: %w", err)
		}
		transports = append(transports, NewSESTransport(cfg))
	}

	return transports, nil
}
