package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"HerShield/internal/middleware"
	"HerShield/internal/model/dto"
	"HerShield/internal/service"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/pkg/response"
)

// ReportLocation 上报当前位置，覆盖上一次的值
func ReportLocation(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.ReportLocationRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Location().Report(ctx, userID, req.Latitude, req.Longitude); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
