// Package sms delivers verification codes. Dispatch is best-effort: callers
// log a failed send and carry on, because the code row is already persisted
// and remains usable.
package sms

//go:generate mockgen -destination=../mocks/mock_sender.go -package=mocks github.com/superadriano/hana-backend/internal/sms Sender

import (
	"context"

	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// LogSender stands in when no SMS provider is configured and writes the
// message to the log instead, which is how codes are read in development.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.log.Info("sms provider not configured, logging message",
		zap.String("to", to),
		zap.String("body", body),
	)
	return nil
}
