package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hyeonKii/SocialService/internal/dto"
	"github.com/hyeonKii/SocialService/internal/service"
	"github.com/spf13/viper"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == viper.GetString("client.origin")
	},
}

// wsFeed streams full feed snapshots to the client. Each message is the
// entire feed; the client is expected to replace its local list, not
// append to it.
func (h *Handler) wsFeed(c *gin.Context) {
	user := h.getUserFromRequest(c)

	scope := c.DefaultQuery("scope", service.ScopeAll)
	if scope != service.ScopeAll && scope != service.ScopeFollowing {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUnknownFeedScope.Error()))
		return
	}

	// The request context dies when this handler returns, but the stream
	// must keep recomposing for as long as the socket is open, so it gets
	// a context of its own, canceled from the socket loops.
	ctx, cancel := context.WithCancel(context.Background())

	stream, err := h.services.Feed.Watch(ctx, scope, user.ID)
	if err != nil {
		cancel()
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		stream.Close()
		return
	}

	go func() {
		defer cancel()
		defer stream.Close()
		defer conn.Close()
		for snapshot := range stream.C {
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
		}
	}()

	// The read loop exists to notice the peer going away; the stream is
	// released as soon as it does.
	go func() {
		defer cancel()
		defer stream.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// wsFollowers streams the full follower-id set of a user.
func (h *Handler) wsFollowers(c *gin.Context) {
	targetID := strings.TrimSpace(c.Param("userID"))
	if targetID == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	stream, err := h.services.Relationship.WatchFollowers(ctx, targetID)
	if err != nil {
		cancel()
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		stream.Close()
		return
	}

	go func() {
		defer cancel()
		defer stream.Close()
		defer conn.Close()
		for snapshot := range stream.C {
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
		}
	}()

	go func() {
		defer cancel()
		defer stream.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
