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

// Register 注册新用户，激活链接发到注册邮箱
func Register(ctx context.Context, c *app.RequestContext) {
	var req dto.RegisterRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Auth().Register(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// Activate 激活账号，token 来自激活邮件里的链接
func Activate(ctx context.Context, c *app.RequestContext) {
	activationToken := c.Query("token")
	if activationToken == "" {
		var req dto.ActivateRequest
		if err := c.BindAndValidate(&req); err != nil {
			response.BindError(ctx, c, err)
			return
		}
		activationToken = req.Token
	}

	if err := service.Auth().Activate(ctx, activationToken); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"activated": true})
}

// Login 用户名或邮箱登录
func Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Auth().Login(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// Refresh 刷新 token 对
func Refresh(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Auth().Refresh(ctx, req.RefreshToken)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// ChangePassword 修改当前用户密码
func ChangePassword(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Auth().ChangePassword(ctx, userID, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// DeleteAccount 注销当前账号
func DeleteAccount(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	if err := service.Auth().DeleteAccount(ctx, userID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// CheckUsername 用户名可用性探测，注册页用
func CheckUsername(ctx context.Context, c *app.RequestContext) {
	username := c.Query("username")
	if username == "" {
		response.Error(ctx, c, pkgerrors.Definition{Code: "INVALID_REQUEST", Message: "username is required"})
		return
	}

	exists, err := service.Auth().UsernameExists(ctx, username)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.AvailabilityResponse{Exists: exists})
}

// CheckEmail 邮箱可用性探测，注册页用
func CheckEmail(ctx context.Context, c *app.RequestContext) {
	email := c.Query("email")
	if email == "" {
		response.Error(ctx, c, pkgerrors.Definition{Code: "INVALID_REQUEST", Message: "email is required"})
		return
	}

	exists, err := service.Auth().EmailExists(ctx, email)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.AvailabilityResponse{Exists: exists})
}
