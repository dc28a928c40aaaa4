package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"HerShield/internal/middleware"
	"HerShield/internal/service"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/pkg/response"
)

// Profile 返回当前用户资料
func Profile(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	resp, err := service.User().Profile(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}
