package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hyeonKii/SocialService/internal/dto"
)

func (h *Handler) follow(c *gin.Context) {
	user := h.getUserFromRequest(c)

	targetID := strings.TrimSpace(c.Param("userID"))
	if targetID == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	if err := h.services.Relationship.Follow(c.Request.Context(), user, targetID); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "followed"))
}

func (h *Handler) unfollow(c *gin.Context) {
	user := h.getUserFromRequest(c)

	targetID := strings.TrimSpace(c.Param("userID"))
	if targetID == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	if err := h.services.Relationship.Unfollow(c.Request.Context(), user.ID, targetID); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "unfollowed"))
}

func (h *Handler) followStatus(c *gin.Context) {
	user := h.getUserFromRequest(c)

	targetID := strings.TrimSpace(c.Param("userID"))
	if targetID == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	isFollowing, err := h.services.Relationship.IsFollowing(c.Request.Context(), user.ID, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.FollowStatus{IsFollowing: isFollowing})
}
