package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sambizara/GRH-Back/internal/events"
	"github.com/sambizara/GRH-Back/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecisions materializes leave decision events into notification
// rows for the requesting user.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decision")
	log.Info("leave decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decision consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecisionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decision event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		notificationService.Notify(
			ctx,
			event.UserID,
			notification.CategoryLeave,
			"Leave request "+event.Status,
			fmt.Sprintf("Your %s leave request (%s to %s, %d day(s)) is now %s",
				event.Category, event.StartDate, event.EndDate, event.DaysTaken, event.Status),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decision message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision notification recorded",
			zap.String("leave_id", event.LeaveID),
			zap.String("user_id", event.UserID),
			zap.String("status", event.Status),
		)
	}
}

// ConsumeContractExpiry turns contract expiry alerts into notification rows
// for the contract holder.
func ConsumeContractExpiry(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.contract_expiry")
	log.Info("contract expiry consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("contract expiry consumer stopped")
				return
			}
			log.Error("fetch contract expiry message failed", zap.Error(err))
			continue
		}

		var event events.ContractExpiringEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode contract expiry event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		notificationService.Notify(
			ctx,
			event.UserID,
			notification.CategoryContract,
			fmt.Sprintf("[%s] Contract expiring soon", event.Urgency),
			fmt.Sprintf("Your %s contract ends on %s (%d day(s) remaining)",
				event.ContractType, event.EndDate, event.DaysRemaining),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit contract expiry message failed", zap.Error(err))
			continue
		}

		log.Info("contract expiry notification recorded",
			zap.String("contract_id", event.ContractID),
			zap.String("user_id", event.UserID),
			zap.String("urgency", event.Urgency),
		)
	}
}
