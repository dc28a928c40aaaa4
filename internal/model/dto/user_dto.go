package dto

// ========== User 相关 DTO ==========

// ProfileResponse 用户资料响应
type ProfileResponse struct {
	PublicID     int64  `json:"public_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Active       bool   `json:"active"`
	ContactCount int    `json:"contact_count"`
}

// AvailabilityResponse 用户名/邮箱可用性查询响应
type AvailabilityResponse struct {
	Exists bool `json:"exists"`
}
