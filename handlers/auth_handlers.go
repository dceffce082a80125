package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"folio/api/config"
	"folio/api/middleware"
	"folio/api/models"
	"folio/api/store"
	"folio/api/utils"
)

type AuthHandlers struct {
	Store  AdminStore
	tokens *utils.TokenIssuer
	cookie config.AuthConfig
	log    *zap.Logger
}

func NewAuthHandlers(s AdminStore, tokens *utils.TokenIssuer, cookie config.AuthConfig, log *zap.Logger) *AuthHandlers {
	return &AuthHandlers{Store: s, tokens: tokens, cookie: cookie, log: log}
}

// Login checks the admin credentials and sets the session cookie.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	admin, err := h.Store.GetAdminByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Error("failed to look up admin", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check credentials"})
			return
		}
		h.log.Info("login failed: unknown email", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(admin.HashedPassword, []byte(req.Password)); err != nil {
		h.log.Info("login failed: password mismatch", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := h.tokens.GenerateJWT(admin)
	if err != nil {
		h.log.Error("failed to generate JWT", zap.String("admin_id", admin.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authentication token"})
		return
	}

	h.setCookie(c, tokenString, int(h.tokens.TTL().Seconds()))

	h.log.Info("admin logged in", zap.String("admin_id", admin.ID.String()))
	c.JSON(http.StatusOK, gin.H{
		"message":     "Login successful",
		"admin_email": admin.Email,
	})
}

func (h *AuthHandlers) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Session returns the admin behind the current token.
func (h *AuthHandlers) Session(c *gin.Context) {
	id := c.MustGet(middleware.AdminIDKey).(uuid.UUID)

	admin, err := h.Store.GetAdminByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: account no longer exists"})
			return
		}
		h.log.Error("failed to load session admin", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *AuthHandlers) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, value, maxAge, "/", "", h.cookie.CookieSecure, true)
}
