// Package mailer implements email sending over SMTP.
//
// It wraps the go-mail client behind a small Service so callers assemble a
// plain Message value instead of dealing with MIME construction and SMTP
// session handling.
//
// # Components
//
//   - Config: SMTP host, credentials, TLS policy and the default sender.
//   - Message: the transport-independent mail description (recipients,
//     subject, plain and HTML bodies, attachments).
//   - Service: validates the message, builds the MIME message and sends it.
//
// # Usage
//
//	svc, err := mailer.NewService(cfg.Mail, logg)
//	err = svc.Send(ctx, mailer.Message{
//	    To:      []string{"ops@example.com"},
//	    Subject: "nightly report",
//	    Body:    "all green",
//	})
package mailer
