package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawkeeper/notices-api/internal/container"
	handlers "github.com/pawkeeper/notices-api/internal/interface/http"
	"github.com/pawkeeper/notices-api/internal/interface/middleware"
)

// UserModule wires the registration/session/profile/favorite routes.
// Public: POST /api/users/register, POST /api/users/login
// Protected: refresh, logout, current profile, avatars, favorites

type UserModule struct {
	Users     *handlers.UserHandler
	Favorites *handlers.FavoriteHandler
	Validator middleware.TokenValidator
}

func NewUserModule(u *handlers.UserHandler, f *handlers.FavoriteHandler, v middleware.TokenValidator) *UserModule {
	return &UserModule{Users: u, Favorites: f, Validator: v}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users/register", registerLimiter, m.Users.Register)
	rg.POST("/users/login", loginLimiter, m.Users.Login)

	// Protected
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.Validator))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/refresh", m.Users.Refresh)
		auth.POST("/logout", m.Users.Logout)
		auth.GET("/current", m.Users.Current)
		auth.PATCH("/current", m.Users.UpdateCurrent)
		auth.PATCH("/avatars", m.Users.UploadAvatar)
		auth.DELETE("/avatars", m.Users.DeleteAvatar)

		auth.GET("/favorites", m.Favorites.List)
		auth.POST("/favorites/:noticeId", m.Favorites.Add)
		auth.DELETE("/favorites/:noticeId", m.Favorites.Remove)
	}
}
