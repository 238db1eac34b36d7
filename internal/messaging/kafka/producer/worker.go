package producer

import (
	"context"
	"time"

	"github.com/sambizara/GRH-Back/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultBatchSize = 50

// Worker drains the outbox table into Kafka. Rows stay pending until the
// broker acknowledges the write, so a crash between poll and publish only
// ever duplicates, never loses.
type Worker struct {
	repo      kafka.OutboxRepository
	writer    *kafkago.Writer
	logger    *zap.Logger
	interval  time.Duration
	batchSize int
}

func NewWorker(repo kafka.OutboxRepository, writer *kafkago.Writer, logger *zap.Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Worker{
		repo:      repo,
		writer:    writer,
		logger:    logger.Named("kafka.producer.worker"),
		interval:  interval,
		batchSize: defaultBatchSize,
	}
}

// Run polls until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := w.drainOnce(ctx); err != nil {
				w.logger.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

func (w *Worker) drainOnce(ctx context.Context) error {
	events, err := w.repo.ListPending(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	w.logger.Debug("draining outbox batch", zap.Int("count", len(events)))
	for _, event := range events {
		if err := w.publish(ctx, event); err != nil {
			w.logger.Error("outbox publish failed",
				zap.String("outbox_id", event.ID),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			_ = w.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}
		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.logger.Error("outbox mark sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		w.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}
	return nil
}

// publish keys messages by aggregate id so one contract's (or leave's)
// events land on the same partition, in order.
func (w *Worker) publish(ctx context.Context, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return w.writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}
