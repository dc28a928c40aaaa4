package model

// Contact 是广播流程使用的联系人快照，手机号为用户录入的原始文本。
// 快照在一次广播调用内只读，不回写存储。
type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	MobileNo string `json:"mobile_no"`
	Relation string `json:"relation"`
}
