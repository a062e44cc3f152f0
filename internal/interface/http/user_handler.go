package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pawkeeper/notices-api/internal/application"
	"github.com/pawkeeper/notices-api/internal/interface/middleware"
	"github.com/pawkeeper/notices-api/pkg/response"
	"github.com/pawkeeper/notices-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
}

// Register POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Birthday: req.Birthday,
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicateEmail) {
			resp := response.Error[any](c, http.StatusConflict, "email already in use", nil)
			c.JSON(resp.Status, resp)
			return
		}
		resp := response.Error[any](c, http.StatusBadRequest, "registration failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusCreated, gin.H{"email": u.Email}, "registered", nil)
	c.JSON(resp.Status, resp)
}

// Login POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// One message for unknown email and wrong password alike.
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, res, "login successful", nil)
	c.JSON(resp.Status, resp)
}

// Refresh GET /api/users/refresh (auth required)
func (h *UserHandler) Refresh(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	userID, err := h.Svc.Refresh(c.Request.Context(), uid)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "user not found", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"userId": userID}, "session active", nil)
	c.JSON(resp.Status, resp)
}

// Logout POST /api/users/logout (auth required)
func (h *UserHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "user not found", nil)
		c.JSON(resp.Status, resp)
		return
	}
	c.Status(http.StatusNoContent)
}

// Current GET /api/users/current (auth required)
func (h *UserHandler) Current(c *gin.Context) {
	u, ok := middleware.UserFrom(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{
		"email":     u.Email,
		"name":      u.Name,
		"address":   u.Address,
		"phone":     u.Phone,
		"birthday":  u.Birthday,
		"avatarURL": u.AvatarURL,
	}, "profile", nil)
	c.JSON(resp.Status, resp)
}

// UpdateCurrent PATCH /api/users/current (auth required)
func (h *UserHandler) UpdateCurrent(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Email:    req.Email,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Birthday: req.Birthday,
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicateEmail) {
			resp := response.Error[any](c, http.StatusConflict, "email already in use", nil)
			c.JSON(resp.Status, resp)
			return
		}
		resp := response.Error[any](c, http.StatusBadRequest, "failed to update profile", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{
		"email":     u.Email,
		"name":      u.Name,
		"address":   u.Address,
		"phone":     u.Phone,
		"birthday":  u.Birthday,
		"avatarURL": u.AvatarURL,
	}, "profile updated", nil)
	c.JSON(resp.Status, resp)
}

// UploadAvatar PATCH /api/users/avatars (auth required, multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	fh, err := c.FormFile("avatar")
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		c.JSON(resp.Status, resp)
		return
	}
	f, err := fh.Open()
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "unreadable avatar file", nil)
		c.JSON(resp.Status, resp)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("avatar upload failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "avatar upload failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"avatarURL": url}, "avatar updated", nil)
	c.JSON(resp.Status, resp)
}

// DeleteAvatar DELETE /api/users/avatars (auth required)
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteAvatar(c.Request.Context(), uid); err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "avatar delete failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"avatarURL": ""}, "avatar removed", nil)
	c.JSON(resp.Status, resp)
}
