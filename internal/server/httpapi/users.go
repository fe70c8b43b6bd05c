package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/schemas"
)

func (s *Server) handleRegister(c *gin.Context) {
	var req schemas.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if errs := req.Validate(); !errs.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errs.Message()})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email in use"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"email":        user.Email,
			"subscription": user.Subscription,
			"avatarURL":    user.AvatarURL,
		},
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req schemas.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if errs := req.Validate(); !errs.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errs.Message()})
		return
	}

	token, user, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Email or password is wrong"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"email":        user.Email,
			"subscription": user.Subscription,
		},
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	identity := identityFrom(c)
	if err := s.users.Logout(c.Request.Context(), identity.ID); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		s.serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCurrent(c *gin.Context) {
	identity := identityFrom(c)
	user, err := s.users.GetCurrent(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":        user.Email,
		"subscription": user.Subscription,
		"avatarURL":    user.AvatarURL,
	})
}

func (s *Server) handleUpdateSubscription(c *gin.Context) {
	var req schemas.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if errs := req.Validate(); !errs.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errs.Message()})
		return
	}

	identity := identityFrom(c)
	user, err := s.users.UpdateSubscription(c.Request.Context(), identity.ID, req.Subscription)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":        user.Email,
		"subscription": user.Subscription,
	})
}

func (s *Server) handleVerify(c *gin.Context) {
	err := s.users.Verify(c.Request.Context(), c.Param("verificationToken"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification successful"})
}

func (s *Server) handleResendVerification(c *gin.Context) {
	var req schemas.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing required field email"})
		return
	}
	if errs := req.Validate(); !errs.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errs.Message()})
		return
	}

	err := s.users.ResendVerification(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Verification has already been passed"})
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			s.serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent"})
}

func (s *Server) handleUpdateAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Avatar file is required"})
		return
	}
	defer file.Close()

	identity := identityFrom(c)
	url, err := s.users.UpdateAvatar(c.Request.Context(), identity.ID, file, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarURL": url})
}
