//go:build unit

package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"parkingbot/internal/handler"
	"parkingbot/internal/handler/api"
	"parkingbot/internal/handler/middleware"
	"parkingbot/internal/pkg/config"
	"parkingbot/tests/common/builder"
	"parkingbot/tests/common/httptest"
	commandsmock "parkingbot/tests/mock/commands"
	queriesmock "parkingbot/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*gin.Engine, *commandsmock.MockParkingCommands, *queriesmock.MockClaimQueries) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockParkingCommands(ctrl)
	qs := queriesmock.NewMockClaimQueries(ctrl)
	cfg := config.NewTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	engine := gin.New()
	handler.NewRouter(
		engine,
		cfg,
		logger,
		api.NewWebhookHandler(cmds, cfg, logger),
		api.NewClaimsHandler(qs),
		middleware.NewAuthMiddleware(cfg),
	)
	return engine, cmds, qs
}

func TestRouter(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		engine, _, _ := newTestRouter(t)
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		httptest.AssertRequestID(t, rec)
	})

	t.Run("webhook on root", func(t *testing.T) {
		engine, cmds, _ := newTestRouter(t)
		cmds.EXPECT().Handle(gomock.Any(), gomock.Any()).Return("There are no upcoming claims.")

		rec := httptest.PerformFormPost(t, engine, "/", builder.WebhookForm("test-webhook-token", "parking", "U1", "parkingbot show"))

		reply := httptest.AssertWebhookReply(t, rec)
		assert.Equal(t, "There are no upcoming claims.", reply.Text)
		httptest.AssertRequestID(t, rec)
	})

	t.Run("claims api requires the token", func(t *testing.T) {
		engine, _, _ := newTestRouter(t)
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/api/claims", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("swagger is not served outside debug mode", func(t *testing.T) {
		engine, _, _ := newTestRouter(t)
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/swagger/index.html", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("panics are recovered", func(t *testing.T) {
		engine, cmds, _ := newTestRouter(t)
		cmds.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, _ any) string {
			panic("boom")
		})

		rec := httptest.PerformFormPost(t, engine, "/", builder.WebhookForm("test-webhook-token", "parking", "U1", "parkingbot show"))
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	})
}
