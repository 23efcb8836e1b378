package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
)

func newQuoteRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewSettingsService(repository.NewSettingsRepository(store.NewMemoryStore()))
	router := gin.New()
	router.POST("/v1/customs/quote", NewSettingsHandler(svc).Quote)
	return router
}

func postQuote(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/customs/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestQuoteAcceptsZeroPrice(t *testing.T) {
	router := newQuoteRouter()

	w := postQuote(router, `{"price":0,"shipping":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

func TestQuoteRequiresPrice(t *testing.T) {
	router := newQuoteRouter()

	w := postQuote(router, `{"shipping":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
