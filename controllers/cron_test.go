package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"garagealert-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func cronTestRouter(handlerCalled *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/cron/generate-reminders", utils.CronAuthMiddleware(), func(c *gin.Context) {
		*handlerCalled = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestCronAuthRejectsMissingSecret(t *testing.T) {
	t.Setenv("CRON_SECRET", "s3cret")
	called := false
	r := cronTestRouter(&called)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/cron/generate-reminders", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestCronAuthRejectsWrongSecret(t *testing.T) {
	t.Setenv("CRON_SECRET", "s3cret")
	called := false
	r := cronTestRouter(&called)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/cron/generate-reminders", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestCronAuthRejectsWhenSecretUnset(t *testing.T) {
	// An unset server secret must never mean open access
	t.Setenv("CRON_SECRET", "")
	called := false
	r := cronTestRouter(&called)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/cron/generate-reminders", nil)
	req.Header.Set("Authorization", "Bearer ")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestCronAuthAcceptsCorrectSecret(t *testing.T) {
	t.Setenv("CRON_SECRET", "s3cret")
	called := false
	r := cronTestRouter(&called)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/cron/generate-reminders", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
