package model

// ContactAddedMessage 新增联系人后的知会短信任务。
// 手机号以密文随消息传递，由 worker 解密后发送。
type ContactAddedMessage struct {
	MessageID         string `json:"message_id"` // 消息唯一ID，用于幂等性检查
	UserPublicID      int64  `json:"user_public_id"`
	AccountName       string `json:"account_name"`
	ContactName       string `json:"contact_name"`
	PhoneCipherBase64 string `json:"phone_cipher_base64"`
}
