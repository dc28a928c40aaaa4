package dto

import "HerShield/internal/model"

// ========== Emergency 相关 DTO ==========

// EmergencyResponse 紧急广播响应，调用方需逐条检查，不能假设全部成功
type EmergencyResponse struct {
	BroadcastID string                   `json:"broadcast_id"`
	Overall     model.BroadcastStatus    `json:"overall"`
	Outcomes    []model.RecipientOutcome `json:"outcomes"`
}

// ReportLocationRequest 位置上报请求
type ReportLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}
