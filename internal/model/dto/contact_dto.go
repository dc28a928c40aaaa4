package dto

import "time"

// ========== Contact 相关 DTO ==========

// ContactItem 紧急联系人项
type ContactItem struct {
	ContactID   int64     `json:"contact_id"`
	Name        string    `json:"name"`
	Relation    string    `json:"relation"`
	Email       string    `json:"email"`
	PhoneMasked string    `json:"phone_masked"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateContactRequest 创建联系人请求
type CreateContactRequest struct {
	Name     string `json:"name" binding:"required"`
	Relation string `json:"relation" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

// CreateContactResponse 创建联系人响应
type CreateContactResponse struct {
	ContactID   int64  `json:"contact_id"`
	Name        string `json:"name"`
	Relation    string `json:"relation"`
	Email       string `json:"email"`
	PhoneMasked string `json:"phone_masked"`
}
