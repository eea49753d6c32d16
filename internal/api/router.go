package api

import (
	"github.com/gin-gonic/gin"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/api/handler"
	"github.com/elimuhub/homework_go_server/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	childHandler        *handler.ChildHandler
	questionHandler     *handler.QuestionHandler
	paymentHandler      *handler.PaymentHandler
	subscriptionHandler *handler.SubscriptionHandler
	uploadHandler       *handler.UploadHandler
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	childHandler *handler.ChildHandler,
	questionHandler *handler.QuestionHandler,
	paymentHandler *handler.PaymentHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	uploadHandler *handler.UploadHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		childHandler:        childHandler,
		questionHandler:     questionHandler,
		paymentHandler:      paymentHandler,
		subscriptionHandler: subscriptionHandler,
		uploadHandler:       uploadHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// public
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// gateway callback, authenticated by transaction lookup
		api.POST("/payments/mpesa/callback", r.paymentHandler.MpesaCallback)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.GET("/entitlement", r.userHandler.GetEntitlement)
			}

			children := authenticated.Group("/children")
			{
				children.POST("", r.childHandler.Create)
				children.GET("", r.childHandler.List)
				children.PUT("/:id", r.childHandler.Update)
				children.DELETE("/:id", r.childHandler.Delete)
			}

			questions := authenticated.Group("/questions")
			{
				questions.POST("", r.questionHandler.Create)
				questions.GET("", r.questionHandler.List)
				questions.GET("/:id", r.questionHandler.Get)
				questions.POST("/:id/rate", r.questionHandler.Rate)
			}

			payments := authenticated.Group("/payments")
			{
				payments.POST("", r.paymentHandler.Create)
				payments.GET("", r.paymentHandler.List)
				payments.GET("/:id", r.paymentHandler.Get)
			}

			subscriptions := authenticated.Group("/subscriptions")
			{
				subscriptions.POST("", r.subscriptionHandler.Create)
				subscriptions.GET("", r.subscriptionHandler.List)
				subscriptions.POST("/:id/cancel", r.subscriptionHandler.Cancel)
			}

			authenticated.POST("/upload/image", r.uploadHandler.UploadImage)
		}
	}

	return engine
}
