// Package mail delivers the daily report over SMTP as a multipart message
// with plain-text and HTML alternatives.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const defaultPort = 465

// Config is the SMTP transport configuration. Password is loaded through the
// secrets loader, not the config file.
type Config struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	From      string `mapstructure:"from"`
	Recipient string `mapstructure:"recipient"`
	Password  string `mapstructure:"-"`
}

// Enabled reports whether enough transport settings are present to attempt a
// send. A disabled sender is not an error: the run logs and skips email.
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != "" && c.Recipient != "" && c.Password != ""
}

type Sender struct {
	cfg    Config
	logger *zap.Logger
}

func NewSender(cfg Config, logger *zap.Logger) *Sender {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	return &Sender{cfg: cfg, logger: logger}
}

func (s *Sender) Enabled() bool {
	return s.cfg.Enabled()
}

// Send delivers the report. Both bodies are attached, plain text first, so
// clients pick the richest part they support.
func (s *Sender) Send(ctx context.Context, subject, plainBody, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(s.cfg.Recipient); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, plainBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.From),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	s.logger.Info("sending report email",
		zap.String("host", s.cfg.Host),
		zap.Int("port", s.cfg.Port),
		zap.String("recipient", s.cfg.Recipient),
	)

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.Info("report email sent", zap.String("recipient", s.cfg.Recipient))
	return nil
}
