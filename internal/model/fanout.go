package model

// NotificationChannel 通知渠道枚举
type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelSMS   NotificationChannel = "sms"
)

// OutcomeStatus 单次投递尝试的状态
type OutcomeStatus string

const (
	OutcomeDelivered OutcomeStatus = "delivered"
	OutcomeFailed    OutcomeStatus = "failed"
)

// BroadcastStatus 一次广播的整体状态
type BroadcastStatus string

const (
	BroadcastSucceeded      BroadcastStatus = "succeeded"
	BroadcastPartialFailure BroadcastStatus = "partial_failure"
	BroadcastFailed         BroadcastStatus = "failed"
)

// RecipientOutcome 记录一次 (接收人, 渠道) 投递尝试。
// 短信是整批一次调用，对应一条批量 outcome，Recipients 列出批内全部号码。
type RecipientOutcome struct {
	Channel    NotificationChannel `json:"channel"`
	Status     OutcomeStatus       `json:"status"`
	Name       string              `json:"name,omitempty"`    // 联系人姓名，批量短信条目为空
	Address    string              `json:"address,omitempty"` // 邮箱、E.164 号码或用户录入的原始号码
	Recipients []string            `json:"recipients,omitempty"`
	Reason     string              `json:"reason,omitempty"`
}

// FanoutResult 一次紧急广播的聚合结果，每次调用新建，不落库。
type FanoutResult struct {
	BroadcastID string             `json:"broadcast_id"`
	Outcomes    []RecipientOutcome `json:"outcomes"`
	Overall     BroadcastStatus    `json:"overall"`
}

// Record 追加一条投递结果。
func (r *FanoutResult) Record(outcome RecipientOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// Finalize 推导整体状态：全部成功为 succeeded，有成有败为 partial_failure，
// 没有任何成功（包括校验阶段全军覆没）为 failed。
func (r *FanoutResult) Finalize() {
	var delivered, failed int
	for _, o := range r.Outcomes {
		switch o.Status {
		case OutcomeDelivered:
			delivered++
		case OutcomeFailed:
			failed++
		}
	}

	switch {
	case delivered > 0 && failed == 0:
		r.Overall = BroadcastSucceeded
	case delivered > 0:
		r.Overall = BroadcastPartialFailure
	default:
		r.Overall = BroadcastFailed
	}
}
