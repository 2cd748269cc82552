package httpapi

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) googleAuthURL(c *gin.Context) {
	state := uuid.NewString()
	c.JSON(http.StatusOK, gin.H{"authUrl": s.auth.AuthURL(state)})
}

// googleCallback finishes the OAuth dance and lands the user back on the
// frontend, success or not.
func (s *Server) googleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, s.frontendURL+"/auth/success?error=no_code")
		return
	}

	ctx := c.Request.Context()
	token, err := s.auth.Exchange(ctx, code)
	if err != nil {
		log.Printf("google code exchange: %v", err)
		c.Redirect(http.StatusFound, s.frontendURL+"/auth/success?error=auth_failed")
		return
	}

	profile, err := s.auth.UserInfo(ctx, token.AccessToken)
	if err != nil {
		log.Printf("google userinfo: %v", err)
		c.Redirect(http.StatusFound, s.frontendURL+"/auth/success?error=auth_failed")
		return
	}

	user, err := s.users.UpsertFromGoogle(ctx,
		profile.ID, profile.Email, profile.Name, profile.Picture,
		token.AccessToken, token.RefreshToken, token.Expiry)
	if err != nil {
		log.Printf("upsert google user: %v", err)
		c.Redirect(http.StatusFound, s.frontendURL+"/auth/success?error=auth_failed")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/auth/success?userId=%d", s.frontendURL, user.ID))
}

type disconnectRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

func (s *Server) disconnectGoogle(c *gin.Context) {
	var req disconnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.users.Disconnect(c.Request.Context(), req.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
