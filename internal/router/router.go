package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"HerShield/internal/handler"
	"HerShield/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware()) // 认证接口限流
	{
		auth.POST("/register", handler.Register)
		auth.GET("/activate", handler.Activate)
		auth.POST("/activate", handler.Activate)
		auth.POST("/login", handler.Login)
		auth.POST("/token/refresh", handler.Refresh)
		auth.GET("/check-username", handler.CheckUsername)
		auth.GET("/check-email", handler.CheckEmail)
	}

	// 用户相关路由
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware()) // 需要鉴权的路由组
	{
		users.GET("/me", handler.Profile)
		users.PUT("/me/password", handler.ChangePassword)
		users.PUT("/me/location", handler.ReportLocation)
		users.DELETE("/me", handler.DeleteAccount)
	}

	// 紧急联系人路由
	contacts := v1.Group("/contacts")
	contacts.Use(middleware.AuthMiddleware())
	{
		contacts.GET("", handler.ListContacts)
		contacts.POST("", handler.CreateContact)
		contacts.DELETE("/:contact_id", handler.DeleteContact)
	}

	// 一键求救
	emergency := v1.Group("/emergency")
	emergency.Use(middleware.AuthMiddleware())
	{
		emergency.POST("", middleware.EmergencyRateLimitMiddleware(), handler.TriggerEmergency)
	}
}
