package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadQualification = "sms.lead.qualification"

type LeadQualificationPayload struct {
	TenantID    string `json:"tenantId"`
	PhoneNumber string `json:"phoneNumber"`
	ReplyText   string `json:"replyText"`
}

func NewLeadQualificationTask(payload LeadQualificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadQualification, data), nil
}

func ParseLeadQualificationPayload(task *asynq.Task) (LeadQualificationPayload, error) {
	var payload LeadQualificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadQualificationPayload{}, err
	}
	return payload, nil
}
