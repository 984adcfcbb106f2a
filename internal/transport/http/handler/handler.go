package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"blogilista/internal/app"
	"blogilista/internal/transport/http/middleware"
	"blogilista/internal/transport/http/response"
)

// Request is what an endpoint sees of an HTTP call. Token and UserID are
// filled only on routes behind the auth middleware.
type Request struct {
	Params map[string]string
	Query  url.Values
	Body   []byte
	Token  string
	UserID uint
}

// Bind decodes the JSON body into v and runs its binding tags.
func (r Request) Bind(v interface{}) error {
	if len(r.Body) == 0 {
		return errors.New("empty request body")
	}
	return binding.JSON.BindBody(r.Body, v)
}

func (r Request) UintParam(name string) (uint, error) {
	parsed, err := strconv.ParseUint(r.Params[name], 10, 64)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(parsed), nil
}

// Result is the status and body an endpoint answers with. A 204 result
// is sent without a body.
type Result struct {
	Status int
	Body   interface{}
}

type Handler interface {
	Handle(ctx context.Context, req Request) Result
}

type HandlerFunc func(ctx context.Context, req Request) Result

func (f HandlerFunc) Handle(ctx context.Context, req Request) Result {
	return f(ctx, req)
}

// Route binds one endpoint to a method and path.
type Route struct {
	Method  string
	Path    string
	Auth    bool
	Handler Handler
}

// Gin adapts an endpoint to gin.
func Gin(h Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid request body")
			return
		}

		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		res := h.Handle(c.Request.Context(), Request{
			Params: params,
			Query:  c.Request.URL.Query(),
			Body:   body,
			Token:  c.GetString(middleware.ContextTokenKey),
			UserID: c.GetUint(middleware.ContextUserIDKey),
		})
		if res.Status == http.StatusNoContent {
			c.Status(http.StatusNoContent)
			return
		}
		response.JSON(c, res.Status, res.Body)
	}
}

func ok(status int, body interface{}) Result {
	return Result{Status: status, Body: body}
}

func fail(status int, message string) Result {
	return Result{Status: status, Body: response.ErrorBody{Error: message}}
}

// errorResult classifies a service error. Unknown errors are logged and
// answered with the generic message.
func errorResult(err error, generic string) Result {
	switch {
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, app.ErrMissingField),
		errors.Is(err, app.ErrTooShort),
		errors.Is(err, app.ErrInvalidLikes),
		errors.Is(err, app.ErrUsernameTaken):
		return fail(http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials),
		errors.Is(err, app.ErrTokenMissing),
		errors.Is(err, app.ErrTokenInvalid),
		errors.Is(err, app.ErrTokenExpired):
		return fail(http.StatusUnauthorized, err.Error())
	case errors.Is(err, app.ErrForbidden):
		return fail(http.StatusForbidden, err.Error())
	default:
		log.Printf("%s: %v", generic, err)
		return fail(http.StatusInternalServerError, generic)
	}
}
