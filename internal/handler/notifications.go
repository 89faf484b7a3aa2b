package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hyeonKii/SocialService/internal/dto"
)

func (h *Handler) notificationsGetMy(c *gin.Context) {
	user := h.getUserFromRequest(c)

	notifications, err := h.services.Notification.FindMy(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) notificationsMarkRead(c *gin.Context) {
	user := h.getUserFromRequest(c)
	notificationID := strings.TrimSpace(c.Param("notificationID"))

	if err := h.services.Notification.MarkRead(c.Request.Context(), notificationID, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "notification marked as read"))
}
