package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/NTElissa/Tech-Enthusiast/internal/application"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	"github.com/NTElissa/Tech-Enthusiast/internal/interface/middleware"
	"github.com/NTElissa/Tech-Enthusiast/pkg/response"
	"github.com/NTElissa/Tech-Enthusiast/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Summary  string   `json:"summary" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
	Featured bool     `json:"featured"`
	Status   string   `json:"status" binding:"omitempty,oneof=draft published archived"`
}

type updatePostRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Summary  *string  `json:"summary"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
	Featured *bool    `json:"featured"`
	Status   *string  `json:"status" binding:"omitempty,oneof=draft published archived"`
}

func (h *PostHandler) Create(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), id.UserID, application.PostInput{
		Title:    req.Title,
		Content:  req.Content,
		Summary:  req.Summary,
		Category: req.Category,
		Tags:     req.Tags,
		Featured: req.Featured,
		Status:   req.Status,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p.Public(), "post created", nil)
}

func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	f := repository.PostFilter{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
		Status:   c.Query("status"),
	}
	// Only admins may list unpublished posts.
	if f.Status != "" && f.Status != string(entity.StatusPublished) {
		id, ok := middleware.IdentityFrom(c)
		if !ok || !id.Role.AtLeast(entity.RoleAdmin) {
			f.Status = string(entity.StatusPublished)
		}
	}
	res, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	out := make([]map[string]any, 0, len(res.Posts))
	for _, p := range res.Posts {
		out = append(out, p.Public())
	}
	response.Success(c, http.StatusOK, out, "posts", map[string]any{
		"page":       res.Page,
		"limit":      res.Limit,
		"total":      res.Total,
		"totalPages": res.TotalPages,
	})
}

func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p.Public(), "post", nil)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), id, application.PostUpdateInput{
		Title:    req.Title,
		Content:  req.Content,
		Summary:  req.Summary,
		Category: req.Category,
		Tags:     req.Tags,
		Featured: req.Featured,
		Status:   req.Status,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p.Public(), "post updated", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), id); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "post deleted", nil)
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	liked, count, err := h.Svc.ToggleLike(c.Request.Context(), c.Param("postId"), id.UserID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	msg := "post unliked"
	if liked {
		msg = "post liked"
	}
	response.Success(c, http.StatusOK, map[string]any{"liked": liked, "likesCount": count}, msg, nil)
}

func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
