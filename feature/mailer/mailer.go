package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// ErrNoRecipients is returned when a message carries no To, Cc or Bcc address.
var ErrNoRecipients = errors.New("message has no recipients")

// Attachment is a file attached to a message, either by path or by reader.
type Attachment struct {
	// Name is the filename presented to the recipient. Required for readers;
	// derived from the path when empty and Path is set.
	Name string
	// Path attaches a file from disk.
	Path string
	// Reader attaches in-memory or streamed content. The reader is consumed
	// during message assembly.
	Reader io.Reader
}

// Message describes one email, independent of the transport.
type Message struct {
	// From overrides the configured default sender when set.
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	ReplyTo     string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// Service sends email through a configured SMTP server.
type Service struct {
	client *mail.Client
	cfg    Config
	logger *zap.Logger
}

// NewService creates a mailer service from the configuration.
func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(time.Duration(timeout) * time.Second),
		mail.WithTLSPolicy(tlsPolicy(cfg.TLSPolicy)),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &Service{client: client, cfg: cfg, logger: logger}, nil
}

// Send validates, assembles and delivers the message.
func (s *Service) Send(ctx context.Context, m Message) error {
	msg, err := s.BuildMessage(m)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	s.logger.Info("mail sent",
		zap.String("subject", m.Subject),
		zap.Int("recipients", len(m.To)+len(m.Cc)+len(m.Bcc)))
	return nil
}

// BuildMessage assembles the MIME message without sending it.
// Address validation happens here, so a bad message fails before any
// network traffic.
func (s *Service) BuildMessage(m Message) (*mail.Msg, error) {
	if len(m.To)+len(m.Cc)+len(m.Bcc) == 0 {
		return nil, ErrNoRecipients
	}

	from := m.From
	if from == "" {
		from = s.cfg.From
	}
	if from == "" {
		return nil, errors.New("message has no sender and no default is configured")
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	if len(m.Cc) > 0 {
		if err := msg.Cc(m.Cc...); err != nil {
			return nil, fmt.Errorf("invalid cc address: %w", err)
		}
	}
	if len(m.Bcc) > 0 {
		if err := msg.Bcc(m.Bcc...); err != nil {
			return nil, fmt.Errorf("invalid bcc address: %w", err)
		}
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}

	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)
	if m.HTMLBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTMLBody)
	}

	for _, att := range m.Attachments {
		switch {
		case att.Reader != nil:
			if att.Name == "" {
				return nil, errors.New("attachment from reader requires a name")
			}
			if err := msg.AttachReader(att.Name, att.Reader); err != nil {
				return nil, fmt.Errorf("attaching %s: %w", att.Name, err)
			}
		case att.Path != "":
			msg.AttachFile(att.Path)
		default:
			return nil, errors.New("attachment has neither path nor reader")
		}
	}

	return msg, nil
}

// tlsPolicy maps the config string onto go-mail's policy constants.
// Unknown values fall back to opportunistic TLS.
func tlsPolicy(name string) mail.TLSPolicy {
	switch name {
	case "mandatory":
		return mail.TLSMandatory
	case "none":
		return mail.NoTLS
	default:
		return mail.TLSOpportunistic
	}
}
