package api

import (
	"log/slog"
	"net/http"

	reqdto "parkingbot/internal/handler/dto/request"
	resdto "parkingbot/internal/handler/dto/response"
	"parkingbot/internal/handler/httperr"
	"parkingbot/internal/handler/middleware"
	"parkingbot/internal/pkg/config"
	"parkingbot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	commands commands.ParkingCommands
	slack    config.SlackConfig
	logger   *slog.Logger
}

func NewWebhookHandler(commands commands.ParkingCommands, cfg config.Config, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		commands: commands,
		slack:    cfg.Slack,
		logger:   logger,
	}
}

// @Summary Slack outgoing webhook
// @Description Runs one bot command and returns the reply for the channel
// @Tags webhook
// @Accept x-www-form-urlencoded
// @Produce json
// @Param token formData string true "Outgoing webhook token"
// @Param channel_name formData string false "Channel the message was posted in"
// @Param user_id formData string true "Sender id"
// @Param text formData string true "Message text"
// @Param trigger_word formData string true "Trigger word that matched"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Router / [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req reqdto.WebhookRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	middleware.SetSlackUser(c, req.UserID)
	h.logger.Info("webhook received",
		"request_id", middleware.GetRequestID(c),
		"params", req,
	)

	reply := h.commands.Handle(c.Request.Context(), req.ToCommand())
	c.JSON(http.StatusOK, resdto.NewWebhookResponse(reply, h.slack.BotUsername, h.slack.BotIcon))
}
