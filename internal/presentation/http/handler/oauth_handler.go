package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/ventafarma/ventafarma-api/internal/application/service"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/dto/response"
)

const oauthStateCookie = "oauth_state"

// GoogleAuth starts the Google OAuth flow by redirecting to the consent page
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	if h.oauthService == nil || !h.oauthService.IsConfigured() {
		response.BadRequest(c, "Google OAuth is not configured")
		return
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		response.InternalServerError(c, "Failed to start OAuth flow")
		return
	}
	state := hex.EncodeToString(stateBytes)

	// State cookie guards against CSRF on the callback
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetAuthURL(state))
}

// GoogleCallback completes the Google OAuth flow and redirects to the
// frontend with tokens in the fragment
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.oauthService == nil || !h.oauthService.IsConfigured() {
		response.BadRequest(c, "Google OAuth is not configured")
		return
	}

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		h.redirectOAuthError(c, "invalid_state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.redirectOAuthError(c, "missing_code")
		return
	}

	token, err := h.oauthService.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		h.redirectOAuthError(c, "exchange_failed")
		return
	}

	userInfo, err := h.oauthService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		h.redirectOAuthError(c, "userinfo_failed")
		return
	}
	if !userInfo.VerifiedEmail {
		h.redirectOAuthError(c, "email_not_verified")
		return
	}

	output, err := h.authService.LoginWithGoogle(c.Request.Context(), &service.GoogleLoginInput{
		Email:     userInfo.Email,
		FirstName: userInfo.GivenName,
		LastName:  userInfo.FamilyName,
		Photo:     userInfo.Picture,
	})
	if err != nil {
		h.redirectOAuthError(c, "login_failed")
		return
	}

	successURL := h.oauthService.GetFrontendSuccessURL()
	if successURL == "" {
		response.OK(c, "Login successful", gin.H{
			"access_token":  output.AccessToken,
			"refresh_token": output.RefreshToken,
			"token_type":    "Bearer",
		})
		return
	}

	// Tokens travel in the fragment so they never hit server logs
	redirect := successURL + "#access_token=" + url.QueryEscape(output.AccessToken) +
		"&refresh_token=" + url.QueryEscape(output.RefreshToken)
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

func (h *AuthHandler) redirectOAuthError(c *gin.Context, reason string) {
	errorURL := h.oauthService.GetFrontendErrorURL()
	if errorURL == "" {
		response.BadRequest(c, "Google login failed: "+reason)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, errorURL+"?error="+url.QueryEscape(reason))
}
