package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smallbiznis/codegrant/internal/domain/oauth"
	"github.com/smallbiznis/codegrant/internal/pages"
	"github.com/smallbiznis/codegrant/internal/service"
)

// AuthHandler serves the authorization code grant endpoints.
type AuthHandler struct {
	Auth   *service.AuthService
	Pages  *pages.Renderer
	Logger *zap.Logger
}

// NewAuthHandler creates the handler set.
func NewAuthHandler(auth *service.AuthService, renderer *pages.Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Pages: renderer, Logger: logger}
}

// Authorize validates the request and renders the login page.
func (h *AuthHandler) Authorize(c *gin.Context) {
	prompt, err := h.Auth.Authorize(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.respondPageError(c, err)
		return
	}

	body, err := h.Pages.Login(prompt.ClientName, prompt.RequestID, prompt.Scope)
	if err != nil {
		h.respondPageError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

type loginForm struct {
	RequestID string `form:"request_id"`
	Email     string `form:"email"`
	Password  string `form:"password"`
}

// Login authenticates the user and redirects back to the client with a code.
func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLoginError(c)
		return
	}

	redirect, err := h.Auth.Login(c.Request.Context(), service.LoginInput{
		RequestID: form.RequestID,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		if errors.Is(err, oauth.ErrLoginFailed) {
			h.renderLoginError(c)
			return
		}
		h.respondPageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, redirect)
}

// Token exchanges an authorization code for an access token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req service.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "Invalid token request."})
		return
	}

	resp, err := h.Auth.ExchangeToken(c.Request.Context(), req)
	if err != nil {
		var oauthErr *service.OAuthError
		if errors.As(err, &oauthErr) {
			c.JSON(oauthErr.Status, gin.H{"error": oauthErr.Code, "error_description": oauthErr.Description})
			return
		}
		h.log().Error("token exchange failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": "Internal server error."})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, resp)
}

// Root is a liveness probe.
func (h *AuthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

// respondPageError redirects protocol errors to the client and renders
// everything else as an error page.
func (h *AuthHandler) respondPageError(c *gin.Context, err error) {
	var oauthErr *service.OAuthError
	if errors.As(err, &oauthErr) {
		if oauthErr.Redirects() {
			c.Redirect(http.StatusFound, oauthErr.RedirectURL())
			return
		}
		h.renderError(c, oauthErr.Description, oauthErr.Status)
		return
	}

	h.log().Error("authorization flow failed", zap.Error(err))
	h.renderError(c, "Internal server error", http.StatusInternalServerError)
}

func (h *AuthHandler) renderError(c *gin.Context, message string, status int) {
	body, err := h.Pages.Error(message, status)
	if err != nil {
		h.log().Error("render error page", zap.Error(err))
		c.String(status, message)
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

func (h *AuthHandler) renderLoginError(c *gin.Context) {
	body, err := h.Pages.LoginError()
	if err != nil {
		h.log().Error("render login error page", zap.Error(err))
		c.String(http.StatusBadRequest, "Sign in failed")
		return
	}
	c.Data(http.StatusBadRequest, "text/html; charset=utf-8", body)
}

func (h *AuthHandler) log() *zap.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return zap.L()
}
