package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/service"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signin", h.authSignIn)
			auth.POST("/signin/:provider", h.authSignInWithProvider)
			auth.POST("/signup", h.authSignUp)
			auth.GET("/me", h.authMiddleware, h.authMe)
			auth.PATCH("/profile", h.authMiddleware, h.authUpdateProfile)
		}

		posts := v1.Group("/posts")
		{
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.GET("", h.notRequiredAuthMiddleware, h.postsFeed)
			posts.GET("/search", h.authMiddleware, h.postsSearchByTag)

			post := posts.Group("/:postID")
			{
				post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
				post.PATCH("", h.authMiddleware, h.postsEdit)
				post.DELETE("", h.authMiddleware, h.postsDelete)
				post.POST("/like", h.authMiddleware, h.postsToggleLike)
				post.POST("/comments", h.authMiddleware, h.commentsCreate)
				post.DELETE("/comments", h.authMiddleware, h.commentsDelete)
			}
		}

		follow := v1.Group("/follow")
		{
			follow.POST("/:userID", h.authMiddleware, h.follow)
			follow.DELETE("/:userID", h.authMiddleware, h.unfollow)
			follow.GET("/:userID/status", h.authMiddleware, h.followStatus)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.authMiddleware, h.notificationsGetMy)
			notifications.PATCH("/:notificationID/read", h.authMiddleware, h.notificationsMarkRead)
		}
	}

	ws := r.Group("/ws")
	{
		ws.GET("/feed", h.authMiddleware, h.wsFeed)
		ws.GET("/followers/:userID", h.wsFollowers)
	}

	return r
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.SessionUser {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.SessionUser)
	if !ok {
		return nil
	}

	return &user
}
