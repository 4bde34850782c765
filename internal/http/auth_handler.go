package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bicosteve/job-board-api/internal/domain"
	"github.com/bicosteve/job-board-api/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de cuentas.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
}

func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
	}
}

type registerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// Register maneja POST /v0/api/profile/register.
func (h *AuthHandler) Register(c *gin.Context) {
	h.register(c, domain.RoleApplicant)
}

// RegisterAdmin maneja POST /v0/api/admin/register.
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	h.register(c, domain.RoleAdmin)
}

func (h *AuthHandler) register(c *gin.Context, role string) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.authServ.Register(c.Request.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            role,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
		case errors.Is(err, service.ErrStore):
			h.logger.Error("register cache failure", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification code error"})
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":               "user created",
		"email":             result.Email,
		"verification_code": result.VerificationCode,
	})
}

// Verify maneja POST /v0/api/profile/verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req struct {
		Email            string `json:"email" binding:"required,email"`
		VerificationCode string `json:"verification_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid verify request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.authServ.VerifyAccount(c.Request.Context(), req.Email, req.VerificationCode); err != nil {
		if errors.Is(err, service.ErrVerificationFailed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "error while verifying account"})
			return
		}
		h.logger.Error("verify account failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "account verification success"})
}

// Login maneja POST /v0/api/profile/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.authServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		case errors.Is(err, service.ErrInvalidLoginAttempt):
			c.JSON(http.StatusForbidden, gin.H{"error": "account not verified or deactivated"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
		}
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{"msg": "Login success", "token": token})
}

// RequestReset maneja POST /v0/api/profile/request-reset.
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid reset request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.authServ.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("request reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while storing reset token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// ResetPassword maneja POST /v0/api/profile/reset-password?token=...
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.logger.Warn("reset without token")
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	var req struct {
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid reset password request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	if err := h.authServ.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidPasswordReset) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot verify reset token"})
			return
		}
		h.logger.Error("reset password failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Password changed successfully"})
}

// Me maneja GET /v0/api/profile/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	account, err := h.authServ.Profile(c.Request.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, service.ErrUserDoesNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": account})
}

// Deactivate maneja PUT /v0/api/admin/deactivate.
func (h *AuthHandler) Deactivate(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Deactivated *bool  `json:"deactivated" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid deactivate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.authServ.Deactivate(c.Request.Context(), req.Email, *req.Deactivated); err != nil {
		if errors.Is(err, service.ErrUserDoesNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("deactivate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "account updated"})
}
