package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"

	pkgerrors "HerShield/pkg/errors"
)

// NormalizePhone 解析用户录入的手机号并返回 E.164 规范格式。
// defaultRegion 为空时不补全国家码，号码必须自带 "+" 前缀的国家码。
func NormalizePhone(raw, defaultRegion string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", pkgerrors.PhoneMalformed)
	}

	num, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %q", pkgerrors.PhoneMalformed, raw)
	}

	// 解析成功不代表可拨打，还需要按地区规则校验
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q", pkgerrors.PhoneMalformed, raw)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// MaskPhone 脱敏手机号用于响应，保留国家码和末四位。
func MaskPhone(phone string) string {
	if len(phone) <= 7 {
		return phone
	}
	return phone[:3] + strings.Repeat("*", len(phone)-7) + phone[len(phone)-4:]
}
