package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hyeonKii/SocialService/internal/authprovider"
	"github.com/hyeonKii/SocialService/internal/dto"
)

func (h *Handler) authSignIn(c *gin.Context) {
	var input dto.SignInRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	tokens, err := h.services.Session.SignIn(c.Request.Context(), input)
	if err != nil {
		c.JSON(authStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.SignUpRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	tokens, err := h.services.Session.SignUp(c.Request.Context(), input)
	if err != nil {
		c.JSON(authStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, tokens)
}

func (h *Handler) authSignInWithProvider(c *gin.Context) {
	provider := c.Param("provider")

	var input dto.ProviderSignInRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	tokens, err := h.services.Session.SignInWithProvider(c.Request.Context(), provider, input)
	if err != nil {
		c.JSON(authStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) authMe(c *gin.Context) {
	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	c.JSON(http.StatusOK, *user)
}

func (h *Handler) authUpdateProfile(c *gin.Context) {
	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	accessToken := c.GetString("access-token")

	updated, err := h.services.Session.UpdateProfile(c.Request.Context(), user, accessToken, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, *updated)
}

// Validation failures are user-correctable; credential failures map to
// 401; everything else is the provider being unavailable.
func authStatus(err error) int {
	switch err {
	case authprovider.ErrInvalidCredentials, authprovider.ErrProviderRejected:
		return http.StatusUnauthorized
	case dto.ErrInvalidEmail, dto.ErrPasswordTooShort, dto.ErrPasswordMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
