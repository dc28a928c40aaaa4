package errors

import "fmt"

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	Unauthorized           = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID          = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	UserNotFound           = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
	UsernameTaken          = Definition{Code: "USERNAME_TAKEN", Message: "Username already taken"}
	EmailTaken             = Definition{Code: "EMAIL_TAKEN", Message: "Email already taken"}
	InvalidCredentials     = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password"}
	AccountNotActive       = Definition{Code: "ACCOUNT_NOT_ACTIVE", Message: "Account is not active, check your email"}
	ActivationTokenInvalid = Definition{Code: "ACTIVATION_TOKEN_INVALID", Message: "Activation token invalid or expired"}
)

// 联系人模块错误。
var (
	ContactLimitReached = Definition{Code: "CONTACT_LIMIT_REACHED", Message: "Contact limit reached"}
	ContactNotFound     = Definition{Code: "CONTACT_NOT_FOUND", Message: "Contact not found"}
)

// 紧急广播错误。
var (
	PhoneMalformed      = Definition{Code: "PHONE_MALFORMED", Message: "Phone number malformed, include the country code"}
	EmptyContactList    = Definition{Code: "EMPTY_CONTACT_LIST", Message: "No emergency contacts configured"}
	LocationUnavailable = Definition{Code: "LOCATION_UNAVAILABLE", Message: "Current location unavailable"}
)

// 限流错误。
var (
	TooManyRequests = Definition{Code: "RATE_LIMITED", Message: "Too many requests, try again later"}
)

// Token 相关错误。
var (
	ErrTokenGeneratorNotInitialized = Definition{Code: "TOKEN_GENERATOR_NOT_INITIALIZED", Message: "Token generator not initialized"}
	ErrUnexpectedSigningMethod      = Definition{Code: "UNEXPECTED_SIGNING_METHOD", Message: "Unexpected token signing method"}
	ErrInvalidToken                 = Definition{Code: "INVALID_TOKEN", Message: "Invalid token"}
	ErrInvalidTokenClaims           = Definition{Code: "INVALID_TOKEN_CLAIMS", Message: "Invalid token claims"}
	ErrInvalidTokenType             = Definition{Code: "INVALID_TOKEN_TYPE", Message: "Invalid token type"}
	ErrUserIDNotFound               = Definition{Code: "USER_ID_NOT_FOUND", Message: "User ID not found in token"}
)

// 渠道配置错误，初始化或发送前校验失败时返回。
var (
	ErrSignNameRequired     = Definition{Code: "SMS_SIGN_NAME_REQUIRED", Message: "SMS sign name is required"}
	ErrTemplateCodeRequired = Definition{Code: "SMS_TEMPLATE_CODE_REQUIRED", Message: "SMS template code is required"}
	ErrPhonesListEmpty      = Definition{Code: "SMS_PHONES_EMPTY", Message: "Phones list is empty"}
)

// TransportError 表示单次投递在某个渠道上的失败。
// 广播流程把它记录进结果，不向上传播。
type TransportError struct {
	Channel string
	Reason  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport failed: %s", e.Channel, e.Reason)
}

// NewTransportError 包装渠道返回的底层错误。
func NewTransportError(channel string, err error) *TransportError {
	return &TransportError{Channel: channel, Reason: err.Error()}
}

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:           Unauthorized,
	InvalidUserID.Code:          InvalidUserID,
	UserNotFound.Code:           UserNotFound,
	UsernameTaken.Code:          UsernameTaken,
	EmailTaken.Code:             EmailTaken,
	InvalidCredentials.Code:     InvalidCredentials,
	AccountNotActive.Code:       AccountNotActive,
	ActivationTokenInvalid.Code: ActivationTokenInvalid,
	ContactLimitReached.Code:    ContactLimitReached,
	ContactNotFound.Code:        ContactNotFound,
	TooManyRequests.Code:        TooManyRequests,
	PhoneMalformed.Code:         PhoneMalformed,
	EmptyContactList.Code:       EmptyContactList,
	LocationUnavailable.Code:    LocationUnavailable,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
