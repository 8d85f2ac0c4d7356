package router

import (
	"fmt"
	"strings"

	"github.com/coursehub-next/internal/cache"
	"github.com/coursehub-next/internal/config"
	publichandlers "github.com/coursehub-next/internal/http/handlers/public"
	"github.com/coursehub-next/internal/logger"
	"github.com/coursehub-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ch"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		public.Use(OptionalUserJWTMiddleware(cfg.JWT.SecretKey))
		{
			public.GET("/courses", publicHandler.ListCourses)
			public.GET("/courses/:id", publicHandler.GetCourse)
			public.GET("/courses/:id/lessons", publicHandler.ListCourseLessons)
			public.GET("/courses/:id/reviews", publicHandler.ListCourseReviews)
		}

		// 银行转账回调（网关侧调用）
		webhooks := apiV1.Group("/webhooks")
		{
			webhooks.POST("/bank", publicHandler.BankWebhook)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.GET("/me/courses", publicHandler.ListMyCourses)
			user.GET("/me/complaints", publicHandler.ListMyComplaints)
			user.GET("/orders", publicHandler.ListMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)
			user.GET("/courses/:id/payment-status", publicHandler.GetPaymentStatus)
			user.GET("/courses/:id/enrollment", publicHandler.GetMyEnrollment)
			user.POST("/courses/:id/reviews", publicHandler.CreateCourseReview)
			user.POST("/courses/:id/complaints", publicHandler.CreateComplaint)
			user.GET("/lessons/:id", publicHandler.GetLesson)
		}
	}

	return r
}
