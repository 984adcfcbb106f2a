package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogilista/internal/app"
	"blogilista/internal/transport/http/response"
)

func TestErrorResult(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: fmt.Errorf("%w: title", app.ErrMissingField), status: http.StatusBadRequest},
		{err: app.ErrTooShort, status: http.StatusBadRequest},
		{err: app.ErrUsernameTaken, status: http.StatusBadRequest},
		{err: app.ErrInvalidLikes, status: http.StatusBadRequest},
		{err: app.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{err: app.ErrTokenMissing, status: http.StatusUnauthorized},
		{err: app.ErrTokenExpired, status: http.StatusUnauthorized},
		{err: app.ErrTokenInvalid, status: http.StatusUnauthorized},
		{err: app.ErrForbidden, status: http.StatusForbidden},
		{err: errors.New("disk full"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		res := errorResult(tt.err, "operation failed")
		assert.Equal(t, tt.status, res.Status, tt.err.Error())
	}

	res := errorResult(errors.New("secret detail"), "operation failed")
	assert.Equal(t, response.ErrorBody{Error: "operation failed"}, res.Body)

	res = errorResult(app.ErrForbidden, "operation failed")
	assert.Equal(t, response.ErrorBody{Error: "permission denied"}, res.Body)
}

func TestRequestHelpers(t *testing.T) {
	req := Request{Params: map[string]string{"id": "12", "bad": "x", "zero": "0"}}

	id, err := req.UintParam("id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	_, err = req.UintParam("bad")
	assert.Error(t, err)
	_, err = req.UintParam("zero")
	assert.Error(t, err)

	var v struct {
		Name string `json:"name" binding:"required"`
	}
	assert.Error(t, req.Bind(&v))
	assert.Error(t, Request{Body: []byte(`{}`)}.Bind(&v))
	require.NoError(t, Request{Body: []byte(`{"name":"x"}`)}.Bind(&v))
	assert.Equal(t, "x", v.Name)
}

func TestGinAdapter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var got Request
	r.POST("/items/:id", Gin(HandlerFunc(func(ctx context.Context, req Request) Result {
		got = req
		return ok(http.StatusCreated, gin.H{"id": req.Params["id"]})
	})))
	r.DELETE("/items/:id", Gin(HandlerFunc(func(ctx context.Context, req Request) Result {
		return Result{Status: http.StatusNoContent}
	})))
	r.GET("/nothing", Gin(HandlerFunc(func(ctx context.Context, req Request) Result {
		return ok(http.StatusOK, nil)
	})))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items/5?limit=3", bytes.NewBufferString(`{"a":1}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"5"}`, rec.Body.String())
	assert.Equal(t, `{"a":1}`, string(got.Body))
	assert.Equal(t, "3", got.Query.Get("limit"))
	assert.Empty(t, got.Token)
	assert.Zero(t, got.UserID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/items/5", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nothing", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}
