package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogilista/internal/app"
)

type AuthHandler struct {
	authService *app.AuthService
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(ctx context.Context, req Request) Result {
	var body LoginRequest
	if err := req.Bind(&body); err != nil {
		return fail(http.StatusBadRequest, "invalid request payload")
	}

	result, err := h.authService.Login(ctx, app.LoginInput{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		return errorResult(err, "login failed")
	}

	return ok(http.StatusOK, gin.H{
		"token":    result.Token,
		"username": result.User.Username,
		"name":     result.User.Name,
	})
}

func (h *AuthHandler) Logout(ctx context.Context, req Request) Result {
	if err := h.authService.Logout(ctx, req.Token); err != nil {
		return errorResult(err, "logout failed")
	}
	return Result{Status: http.StatusNoContent}
}
