package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fundraise-platform/internal/auth"
	"fundraise-platform/internal/middleware"
	"fundraise-platform/internal/models"
	"fundraise-platform/internal/storage"
)

// sessionMaxAge matches the session store TTL (24h), in seconds for the cookie.
const sessionMaxAge = 24 * 60 * 60

// AuthHandler owns registration, login, logout and the current-user lookup.
type AuthHandler struct {
	Store storage.Storage
}

func NewAuthHandler(store storage.Storage) *AuthHandler {
	return &AuthHandler{Store: store}
}

// RegisterRequest defines the JSON struct we expect from the client.
// Gin's 'ShouldBindJSON' uses the 'binding' tags for validation.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	// Optimistic pre-check for a friendly error. The store re-checks inside
	// its write lock, so a concurrent duplicate still cannot slip through.
	existing, err := h.Store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		log.Println("Failed to look up username:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error, please try again."})
		return
	}

	user, err := h.Store.CreateUser(c.Request.Context(), models.InsertUser{
		Username:     req.Username,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
			return
		}
		log.Println("Failed to create user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}

	h.bindSession(c, user.ID)
	c.JSON(http.StatusCreated, user)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.Store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		log.Println("Failed to look up username:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}

	// same response for unknown user and wrong password
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password."})
		return
	}

	h.bindSession(c, user.ID)
	c.JSON(http.StatusOK, user)
}

// Logout unbinds the session. Idempotent: deleting an already-deleted token
// is a no-op.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := c.Get(middleware.ContextSessionToken); ok {
		h.Store.Sessions().Delete(token.(string))
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// Me returns the user bound to the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt(middleware.ContextUserID)

	user, err := h.Store.GetUser(c.Request.Context(), userID)
	if err != nil {
		log.Println("Failed to load user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// bindSession transitions the session to Authenticated for the given user and
// hands the opaque token to the client as a cookie. The same token works as a
// Bearer Authorization header.
func (h *AuthHandler) bindSession(c *gin.Context, userID int) {
	token := h.Store.Sessions().Create(userID)
	c.SetCookie(middleware.SessionCookie, token, sessionMaxAge, "/", "", false, true)
}
