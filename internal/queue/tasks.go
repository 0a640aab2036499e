package queue

import (
	"encoding/json"

	"github.com/partnerconnector/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCommissionNotify commission lifecycle notification task
	TaskCommissionNotify = constants.TaskCommissionNotify
	// TaskDealStageEmail deal stage change email task
	TaskDealStageEmail = constants.TaskDealStageEmail
)

// CommissionNotifyPayload carries the commission notification task.
type CommissionNotifyPayload struct {
	EventType string `json:"event_type"`
	PaymentID uint   `json:"payment_id"`
	DealID    uint   `json:"deal_id"`
}

// DealStageEmailPayload carries the deal stage email task.
type DealStageEmailPayload struct {
	DealID uint   `json:"deal_id"`
	Stage  string `json:"stage"`
}

// NewCommissionNotifyTask builds a commission notification task.
func NewCommissionNotifyTask(payload CommissionNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommissionNotify, body), nil
}

// NewDealStageEmailTask builds a deal stage email task.
func NewDealStageEmailTask(payload DealStageEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDealStageEmail, body), nil
}
