package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// Publisher is the subset of *nats.Conn used to emit events
type Publisher interface {
	Publish(subject string, data []byte) error
}

// StageEvent is published after a pipeline stage is persisted
type StageEvent struct {
	MeetingID string                `json:"meeting_id"`
	Stage     entities.MeetingStage `json:"stage"`
	At        time.Time             `json:"at"`
}

// NATSNotifier publishes stage events as JSON on <prefix>.<stage>
type NATSNotifier struct {
	pub    Publisher
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// Connect dials NATS with the async error and close handlers wired to the
// logger
func Connect(cfg *config.NATSConfig, logger *zap.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(
		cfg.URL,
		nats.Name("meeting-summarizer"),
		nats.Timeout(cfg.Timeout),
		nats.DrainTimeout(cfg.Timeout),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if logger == nil {
				return
			}
			if s != nil {
				logger.Error("async NATS error", zap.String("subject", s.Subject), zap.Error(err))
			} else {
				logger.Error("async NATS error outside subscription", zap.Error(err))
			}
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if logger != nil {
				logger.Info("NATS connection closed")
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	return conn, nil
}

// NewNATSNotifier creates a notifier publishing through pub
func NewNATSNotifier(pub Publisher, subjectPrefix string, logger *zap.Logger) *NATSNotifier {
	if subjectPrefix == "" {
		subjectPrefix = "meetings"
	}
	return &NATSNotifier{
		pub:    pub,
		prefix: subjectPrefix,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Subject returns the subject a stage is published on
func (n *NATSNotifier) Subject(stage entities.MeetingStage) string {
	return n.prefix + "." + string(stage)
}

// Notify publishes the stage event. Delivery is best effort: callers log
// the error and carry on.
func (n *NATSNotifier) Notify(_ context.Context, meetingID string, stage entities.MeetingStage) error {
	payload, err := json.Marshal(StageEvent{
		MeetingID: meetingID,
		Stage:     stage,
		At:        n.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode stage event: %w", err)
	}

	subject := n.Subject(stage)
	if err := n.pub.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	if n.logger != nil {
		n.logger.Debug("📣 Stage event published",
			zap.String("subject", subject),
			zap.String("meeting_id", meetingID),
		)
	}
	return nil
}
