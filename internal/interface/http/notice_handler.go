package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pawkeeper/notices-api/internal/application"
	"github.com/pawkeeper/notices-api/internal/interface/middleware"
	"github.com/pawkeeper/notices-api/pkg/response"
	"github.com/pawkeeper/notices-api/pkg/validation"
)

type NoticeHandler struct {
	Svc       *application.NoticeService
	Favorites *application.FavoriteService
	Logger    *logrus.Logger
}

func NewNoticeHandler(svc *application.NoticeService, favorites *application.FavoriteService, logger *logrus.Logger) *NoticeHandler {
	return &NoticeHandler{Svc: svc, Favorites: favorites, Logger: logger}
}

type createNoticeRequest struct {
	CategoryName string `json:"categoryName" binding:"required"`
	Title        string `json:"title" binding:"required,min=2,max=120"`
	Description  string `json:"description" binding:"max=2000"`
	Location     string `json:"location"`
	Price        string `json:"price"`
	ImageURL     string `json:"imageURL" binding:"omitempty,url"`
}

// Categories GET /api/notices/categories
func (h *NoticeHandler) Categories(c *gin.Context) {
	cats, err := h.Svc.ListCategories(c.Request.Context())
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "failed to list categories", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, cats, "categories", nil)
	c.JSON(resp.Status, resp)
}

// ByCategory GET /api/notices/category/:categoryName
func (h *NoticeHandler) ByCategory(c *gin.Context) {
	notices, err := h.Svc.ListByCategory(c.Request.Context(), c.Param("categoryName"))
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "failed to list notices", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, notices, "notices", nil)
	c.JSON(resp.Status, resp)
}

// ByID GET /api/notices/:noticeId
func (h *NoticeHandler) ByID(c *gin.Context) {
	n, err := h.Svc.GetByID(c.Request.Context(), c.Param("noticeId"))
	if err != nil {
		if errors.Is(err, application.ErrNoticeNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "notice not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		resp := response.Error[any](c, http.StatusBadRequest, "failed to load notice", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, n, "notice", nil)
	c.JSON(resp.Status, resp)
}

// Own GET /api/notices/own (auth required)
func (h *NoticeHandler) Own(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	notices, err := h.Svc.ListOwn(c.Request.Context(), uid)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "failed to list notices", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, notices, "own notices", nil)
	c.JSON(resp.Status, resp)
}

// Favorite GET /api/notices/favorite (auth required)
func (h *NoticeHandler) Favorite(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	notices, err := h.Favorites.ListNotices(c.Request.Context(), uid)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "failed to list favorites", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, notices, "favorite notices", nil)
	c.JSON(resp.Status, resp)
}

// Create POST /api/notices (auth required)
func (h *NoticeHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	n, err := h.Svc.Create(c.Request.Context(), uid, application.CreateNoticeInput{
		CategoryName: req.CategoryName,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("notice create failed")
		}
		resp := response.Error[any](c, http.StatusBadRequest, "failed to create notice", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusCreated, n, "notice created", nil)
	c.JSON(resp.Status, resp)
}

// Delete DELETE /api/notices/:noticeId (auth required, owner only)
func (h *NoticeHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("noticeId"), uid); err != nil {
		if errors.Is(err, application.ErrNoticeNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "notice not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		resp := response.Error[any](c, http.StatusBadRequest, "failed to delete notice", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "notice deleted", nil)
	c.JSON(resp.Status, resp)
}

// Search GET /api/notices/search?q=...&size=...
func (h *NoticeHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		c.JSON(resp.Status, resp)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "search failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, hits, "search results", nil)
	c.JSON(resp.Status, resp)
}
