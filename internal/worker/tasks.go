package worker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailSend = "email:send"
	TypeSMSSend   = "sms:send"
)

// EmailPayload is the body of an email:send task.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SMSPayload is the body of an sms:send task.
type SMSPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// NewEmailTask builds an email:send task on the given queue.
func NewEmailTask(queue string, p EmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal email payload: %w", err)
	}
	return asynq.NewTask(TypeEmailSend, payload,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		asynq.Queue(queue)), nil
}

// NewSMSTask builds an sms:send task. OTP codes go stale quickly so retries are few.
func NewSMSTask(queue string, p SMSPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal sms payload: %w", err)
	}
	return asynq.NewTask(TypeSMSSend, payload,
		asynq.MaxRetry(2),
		asynq.Timeout(15*time.Second),
		asynq.Queue(queue)), nil
}
