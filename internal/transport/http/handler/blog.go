package handler

import (
	"context"
	"net/http"
	"strconv"

	"blogilista/internal/app"
)

type BlogHandler struct {
	blogService *app.BlogService
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

func NewBlogHandler(blogService *app.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) List(ctx context.Context, req Request) Result {
	blogs, err := h.blogService.List(ctx)
	if err != nil {
		return errorResult(err, "list blogs failed")
	}
	return ok(http.StatusOK, blogs)
}

func (h *BlogHandler) Stats(ctx context.Context, req Request) Result {
	summary, err := h.blogService.Stats(ctx)
	if err != nil {
		return errorResult(err, "compute blog stats failed")
	}
	return ok(http.StatusOK, summary)
}

func (h *BlogHandler) Create(ctx context.Context, req Request) Result {
	var body CreateBlogRequest
	if err := req.Bind(&body); err != nil {
		return fail(http.StatusBadRequest, "invalid request payload")
	}

	blog, err := h.blogService.Create(ctx, req.UserID, app.CreateBlogInput{
		Title:  body.Title,
		Author: body.Author,
		URL:    body.URL,
		Likes:  body.Likes,
	})
	if err != nil {
		return errorResult(err, "create blog failed")
	}
	return ok(http.StatusCreated, blog)
}

func (h *BlogHandler) Update(ctx context.Context, req Request) Result {
	id, err := req.UintParam("id")
	if err != nil {
		return fail(http.StatusBadRequest, err.Error())
	}

	var body UpdateBlogRequest
	if err := req.Bind(&body); err != nil {
		return fail(http.StatusBadRequest, "invalid request payload")
	}

	blog, err := h.blogService.Update(ctx, id, req.Token, app.UpdateBlogInput{
		Title:  body.Title,
		Author: body.Author,
		URL:    body.URL,
		Likes:  body.Likes,
	})
	if err != nil {
		return errorResult(err, "update blog failed")
	}
	return ok(http.StatusOK, blog)
}

func (h *BlogHandler) Delete(ctx context.Context, req Request) Result {
	id, err := req.UintParam("id")
	if err != nil {
		return fail(http.StatusBadRequest, err.Error())
	}

	if err := h.blogService.Delete(ctx, id, req.Token); err != nil {
		return errorResult(err, "delete blog failed")
	}
	return Result{Status: http.StatusNoContent}
}

func (h *BlogHandler) Events(ctx context.Context, req Request) Result {
	id, err := req.UintParam("id")
	if err != nil {
		return fail(http.StatusBadRequest, err.Error())
	}

	limit := 100
	if raw := req.Query.Get("limit"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			limit = parsed
		}
	}

	events, err := h.blogService.Events(ctx, id, limit)
	if err != nil {
		return errorResult(err, "list blog events failed")
	}
	return ok(http.StatusOK, events)
}
