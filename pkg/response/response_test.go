package response

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
)

func serveWithError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		FromError(c, logger, err)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestFromErrorMapsKindsToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation("bad input"), http.StatusBadRequest},
		{apperr.Conflict("duplicate"), http.StatusBadRequest},
		{apperr.Auth("invalid credentials"), http.StatusUnauthorized},
		{apperr.Forbidden("nope"), http.StatusForbidden},
		{apperr.NotFound("missing"), http.StatusNotFound},
	}
	for _, tc := range cases {
		w := serveWithError(tc.err)
		assert.Equal(t, tc.want, w.Code)
	}
}

func TestFromErrorHidesInternalDetail(t *testing.T) {
	w := serveWithError(apperr.Internal(errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "server error")
}

func TestFromErrorHandlesUnknownErrors(t *testing.T) {
	w := serveWithError(errors.New("some bug"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "some bug")
}

func TestErrorMessageSurfacesToClient(t *testing.T) {
	w := serveWithError(apperr.Conflict("email or username already exists"))
	assert.Contains(t, w.Body.String(), "email or username already exists")
	assert.Contains(t, w.Body.String(), `"success":false`)
}
