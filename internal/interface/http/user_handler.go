package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/NTElissa/Tech-Enthusiast/internal/application"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/interface/middleware"
	"github.com/NTElissa/Tech-Enthusiast/pkg/response"
	"github.com/NTElissa/Tech-Enthusiast/pkg/validation"
)

const maxPictureBytes = 5 << 20

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Username        *string `json:"username" binding:"omitempty,username"`
	PhoneNumber     *string `json:"phoneNumber"`
	Bio             *string `json:"bio"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword" binding:"omitempty,pwd"`
}

type updateRoleRequest struct {
	Role int `json:"role" binding:"gte=0,lte=2"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	u, err := h.Svc.GetProfile(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), id.UserID, application.ProfileUpdateInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		PhoneNumber:     req.PhoneNumber,
		Bio:             req.Bio,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "profile updated", nil)
}

func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	fh, err := c.FormFile("picture")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "picture file is required", nil)
		return
	}
	if fh.Size > maxPictureBytes {
		response.Error[any](c, http.StatusBadRequest, "picture must be at most 5MB", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read picture", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadProfilePicture(c.Request.Context(), id.UserID, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, map[string]any{"profilePicture": url}, "profile picture updated", nil)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"count": len(out)})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.DeleteUser(c.Request.Context(), id, c.Param("userId")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "user deleted", nil)
}

func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUserRole(c.Request.Context(), id, c.Param("userId"), entity.Role(req.Role))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "role updated", nil)
}
