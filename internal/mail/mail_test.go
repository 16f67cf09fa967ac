package mail

import (
	"testing"

	"go.uber.org/zap"
)

func TestConfigEnabled(t *testing.T) {
	full := Config{
		Host:      "smtp.gmail.com",
		From:      "scout@example.com",
		Recipient: "owner@example.com",
		Password:  "app-password",
	}
	if !full.Enabled() {
		t.Fatal("fully configured transport must be enabled")
	}

	cases := map[string]Config{
		"no host":      {From: full.From, Recipient: full.Recipient, Password: full.Password},
		"no from":      {Host: full.Host, Recipient: full.Recipient, Password: full.Password},
		"no recipient": {Host: full.Host, From: full.From, Password: full.Password},
		"no password":  {Host: full.Host, From: full.From, Recipient: full.Recipient},
		"empty":        {},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if cfg.Enabled() {
				t.Fatal("partially configured transport must be disabled")
			}
		})
	}
}

func TestNewSenderDefaultsPort(t *testing.T) {
	s := NewSender(Config{Host: "smtp.gmail.com"}, zap.NewNop())
	if s.cfg.Port != 465 {
		t.Fatalf("expected default port 465, got %d", s.cfg.Port)
	}

	s = NewSender(Config{Host: "smtp.gmail.com", Port: 587}, zap.NewNop())
	if s.cfg.Port != 587 {
		t.Fatalf("expected explicit port kept, got %d", s.cfg.Port)
	}
}
