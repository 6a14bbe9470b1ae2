package memory

import (
	"context"
	"log"
)

// LogNotifier prints mail events instead of publishing them. Used when
// RabbitMQ is not configured (local development).
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) SendOTP(ctx context.Context, email, code string) error {
	log.Printf("[log-notifier] otp: email=%s code=%s", email, code)
	return nil
}

func (n *LogNotifier) SendApprovalNotice(ctx context.Context, email, username string) error {
	log.Printf("[log-notifier] approved: email=%s username=%s", email, username)
	return nil
}

func (n *LogNotifier) SendRejectionNotice(ctx context.Context, email, username, reason string) error {
	log.Printf("[log-notifier] rejected: email=%s username=%s reason=%q", email, username, reason)
	return nil
}
