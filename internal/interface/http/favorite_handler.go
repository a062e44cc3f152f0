package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pawkeeper/notices-api/internal/application"
	"github.com/pawkeeper/notices-api/internal/interface/middleware"
	"github.com/pawkeeper/notices-api/pkg/response"
)

type FavoriteHandler struct {
	Svc    *application.FavoriteService
	Logger *logrus.Logger
}

func NewFavoriteHandler(svc *application.FavoriteService, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{Svc: svc, Logger: logger}
}

// List GET /api/users/favorites (auth required)
func (h *FavoriteHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	ids, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "user not found", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, ids, "favorites", nil)
	c.JSON(resp.Status, resp)
}

// Add POST /api/users/favorites/:noticeId (auth required)
func (h *FavoriteHandler) Add(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Add(c.Request.Context(), uid, c.Param("noticeId")); err != nil {
		h.writeFavoriteError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"favorited": true}, "favorite added", nil)
	c.JSON(resp.Status, resp)
}

// Remove DELETE /api/users/favorites/:noticeId (auth required)
func (h *FavoriteHandler) Remove(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Remove(c.Request.Context(), uid, c.Param("noticeId")); err != nil {
		h.writeFavoriteError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"favorited": false}, "favorite removed", nil)
	c.JSON(resp.Status, resp)
}

func (h *FavoriteHandler) writeFavoriteError(c *gin.Context, err error) {
	if errors.Is(err, application.ErrMissingNoticeID) {
		resp := response.Error[any](c, http.StatusBadRequest, "missing notice id", nil)
		c.JSON(resp.Status, resp)
		return
	}
	if h.Logger != nil {
		h.Logger.WithError(err).Error("favorite mutation failed")
	}
	resp := response.Error[any](c, http.StatusBadRequest, "favorite update failed", nil)
	c.JSON(resp.Status, resp)
}
