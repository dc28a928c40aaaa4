package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"HerShield/internal/middleware"
	"HerShield/internal/service"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/pkg/response"
)

// TriggerEmergency 一键求救，向全部联系人广播邮件和短信。
// 响应里的 outcomes 要逐条看，整体状态不是全或无。
func TriggerEmergency(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	resp, err := service.Emergency().Trigger(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}
