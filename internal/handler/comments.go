package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hyeonKii/SocialService/internal/dto"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/service"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)
	postID := strings.TrimSpace(c.Param("postID"))

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	comment, err := h.services.Comment.Add(c.Request.Context(), user, postID, input)
	if err != nil {
		if err == service.ErrPostNotFound {
			c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, *comment)
}

func (h *Handler) commentsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)
	postID := strings.TrimSpace(c.Param("postID"))

	var input dto.DeleteCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidComment.Error()))
		return
	}

	comment := model.Comment{
		Comment:   input.Comment,
		UID:       input.UID,
		Email:     input.Email,
		CreatedAt: input.CreatedAt,
	}

	if err := h.services.Comment.Remove(c.Request.Context(), user, postID, comment); err != nil {
		if err == service.ErrForbidden {
			c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "comment deleted"))
}
