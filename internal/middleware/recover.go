package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"HerShield/config"
	"HerShield/pkg/errors"
	"HerShield/pkg/logger"
	"HerShield/pkg/response"
)

// RecoverMiddleware 捕获 handler 链里的 panic，记日志并返回 500。
// 生产环境不向客户端暴露 panic 详情。
func RecoverMiddleware() app.HandlerFunc {
	isProduction := config.Cfg.IsProduction()

	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err, isProduction)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}, isProduction bool) {
	stack := debug.Stack()

	fields := []zap.Field{
		zap.String("panic", fmt.Sprintf("%v", err)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
		zap.ByteString("stack", stack),
	}

	if userID, exists := GetUserID(ctx, c); exists {
		fields = append(fields, zap.String("user_id", userID))
	}

	logger.Logger.Error("[PANIC RECOVERED]", fields...)

	errDef := errors.Definition{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "Internal server error",
	}

	if !isProduction {
		errDef.Message = fmt.Sprintf("Internal error: %v", err)
		response.ErrorWithDetails(ctx, c, errDef, map[string]interface{}{
			"panic": fmt.Sprintf("%v", err),
			"stack": shortStack(stack),
		})
		return
	}

	response.Error(ctx, c, errDef)
}

// shortStack 截断堆栈，只保留前 20 行
func shortStack(stack []byte) string {
	lines := strings.Split(string(stack), "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}
	return strings.Join(lines, "\n")
}
