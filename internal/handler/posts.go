package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hyeonKii/SocialService/internal/dto"
	"github.com/hyeonKii/SocialService/internal/service"
)

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), user, input)
	if err != nil {
		if err == dto.ErrDuplicateHashtag || err == service.ErrImageMustBeDataURL {
			c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, *createdPost)
}

func (h *Handler) postsFeed(c *gin.Context) {
	scope := c.DefaultQuery("scope", service.ScopeAll)
	if scope != service.ScopeAll && scope != service.ScopeFollowing {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUnknownFeedScope.Error()))
		return
	}

	viewerID := ""
	if user := h.getUserFromRequest(c); user != nil {
		viewerID = user.ID
	} else if scope == service.ScopeFollowing {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	posts, err := h.services.Feed.Compose(c.Request.Context(), scope, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsSearchByTag(c *gin.Context) {
	tag := strings.TrimSpace(c.Query("tag"))

	posts, err := h.services.Feed.SearchByTag(c.Request.Context(), tag)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID := strings.TrimSpace(c.Param("postID"))
	if postID == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		if err == service.ErrPostNotFound {
			c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	postDto := dto.GetPost{
		Post: *post,
	}
	if user != nil {
		postDto.IsLiked = post.IsLikedBy(user.ID)
	}

	c.JSON(http.StatusOK, postDto)
}

func (h *Handler) postsEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)
	postID := strings.TrimSpace(c.Param("postID"))

	var input dto.EditPostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.Edit(c.Request.Context(), user, postID, input)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
		case service.ErrForbidden:
			c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, err.Error()))
		case dto.ErrDuplicateHashtag, service.ErrImageMustBeDataURL:
			c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, *post)
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)
	postID := strings.TrimSpace(c.Param("postID"))

	if err := h.services.Post.Delete(c.Request.Context(), user, postID); err != nil {
		switch err {
		case service.ErrPostNotFound:
			c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
		case service.ErrForbidden:
			c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "post deleted"))
}

func (h *Handler) postsToggleLike(c *gin.Context) {
	user := h.getUserFromRequest(c)
	postID := strings.TrimSpace(c.Param("postID"))

	post, err := h.services.Post.ToggleLike(c.Request.Context(), postID, user.ID)
	if err != nil {
		if err == service.ErrPostNotFound {
			c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.GetPost{Post: *post, IsLiked: post.IsLikedBy(user.ID)})
}
