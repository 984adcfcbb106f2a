package handler

import (
	"context"
	"net/http"

	"blogilista/internal/app"
)

type UserHandler struct {
	userService *app.UserService
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(ctx context.Context, req Request) Result {
	users, err := h.userService.List(ctx)
	if err != nil {
		return errorResult(err, "list users failed")
	}
	return ok(http.StatusOK, users)
}

func (h *UserHandler) Create(ctx context.Context, req Request) Result {
	var body CreateUserRequest
	if err := req.Bind(&body); err != nil {
		return fail(http.StatusBadRequest, "invalid request payload")
	}

	user, err := h.userService.Create(ctx, app.CreateUserInput{
		Username: body.Username,
		Name:     body.Name,
		Password: body.Password,
	})
	if err != nil {
		return errorResult(err, "create user failed")
	}
	return ok(http.StatusCreated, user)
}
