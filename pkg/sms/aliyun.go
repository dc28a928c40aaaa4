package sms

import (
	"context"
	"encoding/json"
	"fmt"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	openapiutil "github.com/alibabacloud-go/openapi-util/service"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	credential "github.com/aliyun/credentials-go/credentials"
	"go.uber.org/zap"

	"HerShield/config"
	"HerShield/pkg/errors"
	"HerShield/pkg/logger"
)

// AliyunClient 阿里云短信客户端。
// 阿里云只支持模板短信，正文作为模板参数 ${message} 注入，
// 签名与模板代码来自配置。
type AliyunClient struct {
	client       *openapi.Client
	signName     string
	templateCode string
}

// NewAliyunClient 创建阿里云 SMS 客户端
// 凭据通过环境变量自动获取：
// ALIBABA_CLOUD_ACCESS_KEY_ID 和 ALIBABA_CLOUD_ACCESS_KEY_SECRET
func NewAliyunClient() (*AliyunClient, error) {
	cfg := config.Cfg

	if cfg.SMSSignName == "" {
		return nil, errors.ErrSignNameRequired
	}
	if cfg.SMSTemplateCode == "" {
		return nil, errors.ErrTemplateCodeRequired
	}

	cred, err := credential.NewCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun credential: %w", err)
	}

	openapiConfig := &openapi.Config{
		Credential: cred,
		Endpoint:   tea.String("dysmsapi.aliyuncs.com"),
	}

	client, err := openapi.NewClient(openapiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun client: %w", err)
	}

	return &AliyunClient{
		client:       client,
		signName:     cfg.SMSSignName,
		templateCode: cfg.SMSTemplateCode,
	}, nil
}

// createApiInfo 创建 API 信息
func (c *AliyunClient) createApiInfo(action string) *openapi.Params {
	return &openapi.Params{
		Action:      tea.String(action),
		Version:     tea.String("2017-05-25"),
		Protocol:    tea.String("HTTPS"),
		Method:      tea.String("POST"),
		AuthType:    tea.String("AK"),
		Style:       tea.String("RPC"),
		Pathname:    tea.String("/"),
		ReqBodyType: tea.String("json"),
		BodyType:    tea.String("json"),
	}
}

func templateParam(body string) (string, error) {
	data, err := json.Marshal(map[string]string{"message": body})
	if err != nil {
		return "", fmt.Errorf("failed to marshal template param: %w", err)
	}
	return string(data), nil
}

// SendSingle 发送单条短信
func (c *AliyunClient) SendSingle(ctx context.Context, phone, body string) (*SendResponse, error) {
	param, err := templateParam(body)
	if err != nil {
		return nil, err
	}

	params := c.createApiInfo("SendSms")

	queries := map[string]interface{}{
		"PhoneNumbers":  tea.String(phone),
		"SignName":      tea.String(c.signName),
		"TemplateCode":  tea.String(c.templateCode),
		"TemplateParam": tea.String(param),
	}

	runtime := &util.RuntimeOptions{}
	request := &openapi.OpenApiRequest{
		Query: openapiutil.Query(queries),
	}

	resp, err := c.client.CallApi(params, request, runtime)
	if err != nil {
		logger.Logger.Error("Failed to send SMS",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}

	return c.parseResponse(resp)
}

// SendBatch 批量发送短信
// 根据阿里云 SendBatchSms API 文档：
// - PhoneNumberJson: JSON 数组格式的手机号列表
// - SignNameJson: JSON 数组格式的签名列表，每个手机号对应一个签名
// - TemplateParamJson: JSON 数组格式的模板参数列表
func (c *AliyunClient) SendBatch(ctx context.Context, phones []string, body string) (*SendResponse, error) {
	if len(phones) == 0 {
		return nil, errors.ErrPhonesListEmpty
	}

	param, err := templateParam(body)
	if err != nil {
		return nil, err
	}

	phoneNumbersJSON, err := json.Marshal(phones)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal phone numbers: %w", err)
	}

	// 所有手机号使用相同的签名和模板参数
	signNames := make([]string, len(phones))
	templateParams := make([]string, len(phones))
	for i := range phones {
		signNames[i] = c.signName
		templateParams[i] = param
	}

	signNamesJSON, err := json.Marshal(signNames)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign names: %w", err)
	}
	templateParamsJSON, err := json.Marshal(templateParams)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template params: %w", err)
	}

	params := c.createApiInfo("SendBatchSms")

	queries := map[string]interface{}{
		"PhoneNumberJson":   tea.String(string(phoneNumbersJSON)),
		"SignNameJson":      tea.String(string(signNamesJSON)),
		"TemplateCode":      tea.String(c.templateCode),
		"TemplateParamJson": tea.String(string(templateParamsJSON)),
	}

	runtime := &util.RuntimeOptions{}
	request := &openapi.OpenApiRequest{
		Query: openapiutil.Query(queries),
	}

	resp, err := c.client.CallApi(params, request, runtime)
	if err != nil {
		logger.Logger.Error("Failed to send batch SMS",
			zap.Int("count", len(phones)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send batch SMS: %w", err)
	}

	response, err := c.parseResponse(resp)
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("Batch SMS sent successfully",
		zap.Int("count", len(phones)),
	)

	return response, nil
}

// parseResponse 检查 HTTP 状态码并解析响应体里的业务状态
func (c *AliyunClient) parseResponse(resp map[string]interface{}) (*SendResponse, error) {
	if resp["statusCode"] != nil {
		statusCode, err := parseStatusCode(resp["statusCode"])
		if err != nil {
			return nil, err
		}
		if statusCode != 200 {
			logger.Logger.Error("SMS API returned error",
				zap.Int("statusCode", statusCode),
				zap.Any("body", resp["body"]),
			)
			return nil, fmt.Errorf("SMS API error: statusCode=%d", statusCode)
		}
	}

	response := &SendResponse{Provider: "aliyun"}

	if resp["body"] != nil {
		bodyBytes, err := json.Marshal(resp["body"])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response body: %w", err)
		}

		var bodyMap map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &bodyMap); err == nil {
			if bizID, ok := bodyMap["BizId"].(string); ok {
				response.MessageID = bizID
			}
			if code, ok := bodyMap["Code"].(string); ok {
				response.StatusCode = code
				if code != "OK" {
					message := ""
					if msg, ok := bodyMap["Message"].(string); ok {
						message = msg
					}
					logger.Logger.Error("SMS send failed",
						zap.String("code", code),
						zap.String("message", message),
					)
					return nil, fmt.Errorf("SMS send failed: %s - %s", code, message)
				}
			}
		}
	}

	return response, nil
}

// parseStatusCode 兼容 SDK 返回 int / float64 / json.Number 的情况
func parseStatusCode(v interface{}) (int, error) {
	switch code := v.(type) {
	case int:
		return code, nil
	case int64:
		return int(code), nil
	case float64:
		return int(code), nil
	case json.Number:
		n, err := code.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid status code: %v", v)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected status code type: %T", v)
	}
}
