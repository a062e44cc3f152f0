package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawkeeper/notices-api/internal/container"
	handlers "github.com/pawkeeper/notices-api/internal/interface/http"
	"github.com/pawkeeper/notices-api/internal/interface/middleware"
)

// NoticeModule wires the notice browse/create/delete/search routes.
// Public: categories, by-category, by-id, search
// Protected: own, favorite listing, create, delete

type NoticeModule struct {
	Handler   *handlers.NoticeHandler
	Validator middleware.TokenValidator
}

func NewNoticeModule(h *handlers.NoticeHandler, v middleware.TokenValidator) *NoticeModule {
	return &NoticeModule{Handler: h, Validator: v}
}

func (m *NoticeModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/notices/categories", browseLimiter, m.Handler.Categories)
	rg.GET("/notices/category/:categoryName", browseLimiter, m.Handler.ByCategory)
	rg.GET("/notices/search", browseLimiter, m.Handler.Search)

	auth := rg.Group("/notices")
	auth.Use(middleware.Auth(m.Validator))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/own", m.Handler.Own)
		auth.GET("/favorite", m.Handler.Favorite)
		auth.POST("", m.Handler.Create)
		auth.DELETE("/:noticeId", m.Handler.Delete)
	}

	// Registered last so the static segments above win the match.
	rg.GET("/notices/:noticeId", browseLimiter, m.Handler.ByID)
}
