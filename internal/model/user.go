package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// User 用户模型
type User struct {
	BaseModel
	PublicID     int64   `gorm:"uniqueIndex;not null" json:"public_id"`
	Username     string  `gorm:"uniqueIndex;type:varchar(64);not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;type:varchar(128);not null" json:"email"`
	PasswordHash string  `gorm:"type:varchar(128);not null" json:"-"`
	Active       bool    `gorm:"not null;default:false;index:idx_users_active" json:"active"` // 邮箱激活前为 false

	// 紧急联系人数组（JSONB），手机号密文存储
	EmergencyContacts EmergencyContacts `gorm:"type:jsonb;default:'[]'" json:"emergency_contacts"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// EmergencyContacts 紧急联系人数组（JSONB）
type EmergencyContacts []EmergencyContact

// EmergencyContact 紧急联系人结构（存储在 users.emergency_contacts JSONB 中）
type EmergencyContact struct {
	ContactID         int64  `json:"contact_id"`
	Name              string `json:"name"`
	Relation          string `json:"relation"`
	Email             string `json:"email"`
	PhoneCipherBase64 string `json:"phone_cipher_base64"` // base64 编码的密文，原样保存用户录入
	PhoneHash         string `json:"phone_hash"`
	CreatedAt         string `json:"created_at"`
}

func (c EmergencyContacts) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *EmergencyContacts) Scan(value interface{}) error {
	if value == nil {
		*c = EmergencyContacts{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for EmergencyContacts")
	}

	return json.Unmarshal(data, c)
}
