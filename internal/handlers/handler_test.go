package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"culture-passport/internal/auth"
	"culture-passport/internal/store"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", &store.ValidationError{Field: "title", Rule: "required"}, http.StatusBadRequest,
			`{"error":"title is required","field":"title"}`},
		{"wrapped validation", fmt.Errorf("create: %w", &store.ValidationError{Field: "score", Rule: "lte"}),
			http.StatusBadRequest, `{"error":"score is invalid","field":"score"}`},
		{"unknown parent", &store.ValidationError{Field: "company_id", Rule: "exists"}, http.StatusBadRequest,
			`{"error":"company_id does not exist","field":"company_id"}`},
		{"transition", store.ErrInvalidTransition, http.StatusNotFound,
			`{"error":"not found or not in correct state"}`},
		{"not found", fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound, `{"error":"not found"}`},
		{"duplicate", store.ErrDuplicate, http.StatusConflict, `{"error":"already exists"}`},
		{"referenced", store.ErrReferenced, http.StatusConflict, `{"error":"referenced by other records"}`},
		{"token", auth.ErrInvalidToken, http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"other", errors.New("connection refused"), http.StatusInternalServerError, `{"error":"connection refused"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := test.NewNullLogger()
			h := New(Deps{Log: log})
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.respondError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestRespondErrorLogsUnexpected(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := New(Deps{Log: log})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.respondError(c, errors.New("boom"))
	h.respondError(c, store.ErrNotFound)

	if assert.Len(t, hook.AllEntries(), 1) {
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		assert.Equal(t, "request failed", hook.LastEntry().Message)
	}
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitIDs(" a, ,b,"))
	assert.Nil(t, splitIDs(""))
}
