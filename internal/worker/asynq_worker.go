package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/provider"
	"github.com/partnerconnector/internal/queue"
	"github.com/partnerconnector/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued notification tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register attaches the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCommissionNotify, c.handleCommissionNotify)
	mux.HandleFunc(queue.TaskDealStageEmail, c.handleDealStageEmail)
}

func (c *Consumer) handleCommissionNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_commission_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CommissionNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_commission_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.PaymentID == 0 {
		logger.Debugw("worker_commission_notify_skip_invalid_payload", "payment_id", payload.PaymentID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_commission_notify_skip_service_nil", "payment_id", payload.PaymentID)
		return nil
	}
	if err := c.NotificationService.DispatchCommissionNotify(ctx, payload); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			logger.Debugw("worker_commission_notify_skip_not_found", "payment_id", payload.PaymentID)
			return nil
		case errors.Is(err, service.ErrEmailDisabled), errors.Is(err, service.ErrEmailNotConfigured):
			logger.Debugw("worker_commission_notify_skip_email_off", "payment_id", payload.PaymentID)
			return nil
		default:
			logger.Warnw("worker_commission_notify_failed", "payment_id", payload.PaymentID, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleDealStageEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_deal_stage_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DealStageEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_deal_stage_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.DealID == 0 {
		logger.Debugw("worker_deal_stage_email_skip_invalid_payload", "deal_id", payload.DealID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_deal_stage_email_skip_service_nil", "deal_id", payload.DealID)
		return nil
	}
	if err := c.NotificationService.DispatchDealStageEmail(ctx, payload); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			logger.Debugw("worker_deal_stage_email_skip_not_found", "deal_id", payload.DealID)
			return nil
		case errors.Is(err, service.ErrEmailDisabled), errors.Is(err, service.ErrEmailNotConfigured):
			logger.Debugw("worker_deal_stage_email_skip_email_off", "deal_id", payload.DealID)
			return nil
		default:
			logger.Warnw("worker_deal_stage_email_failed", "deal_id", payload.DealID, "error", err)
			return err
		}
	}
	return nil
}
