package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"HerShield/internal/middleware"
	"HerShield/internal/model/dto"
	"HerShield/internal/service"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/pkg/response"
)

// ListContacts 列出当前用户的紧急联系人
func ListContacts(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	contacts, err := service.Contact().ListContacts(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, contacts)
}

// CreateContact 新增紧急联系人
func CreateContact(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.CreateContactRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Contact().CreateContact(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// DeleteContact 删除紧急联系人
func DeleteContact(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	contactID, err := strconv.ParseInt(c.Param("contact_id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.Definition{Code: "INVALID_REQUEST", Message: "invalid contact_id"})
		return
	}

	if err := service.Contact().DeleteContact(ctx, userID, contactID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
