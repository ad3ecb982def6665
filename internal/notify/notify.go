package notify

import (
	"context"
	"errors"

	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// Sink delivers a text message to a gardener
type Sink interface {
	Notify(ctx context.Context, userID, text string) error
}

// LogSink writes notifications to the structured log instead of delivering them
type LogSink struct{}

// Notify implements Sink
func (LogSink) Notify(ctx context.Context, userID, text string) error {
	logger.FromContext(ctx).Info(LogMsgNotification, logger.AttrKeyUserID, userID, "text", text)
	return nil
}

// MultiSink fans a notification out to every sink and joins their errors
type MultiSink []Sink

// Notify implements Sink
func (m MultiSink) Notify(ctx context.Context, userID, text string) error {
	var errs []error
	for _, s := range m {
		if err := s.Notify(ctx, userID, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
