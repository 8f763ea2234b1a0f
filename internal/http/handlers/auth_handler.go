// README: Registration and login.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/auth"
	"rideshare/internal/modules/user"
)

type AuthHandler struct {
	users *user.Service
	jwt   *auth.JWTService
}

func NewAuthHandler(users *user.Service, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	u, err := h.users.Register(c.Request.Context(), user.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.jwt.Generate(u.ID, string(u.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}
