//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, "Failed to decode response JSON: %s", w.Body.String())
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var errorResponse struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &errorResponse)
	assert.NoError(t, err, "Failed to decode error response JSON: %s", w.Body.String())

	if expectedErrorMsg != "" {
		assert.Contains(t, errorResponse.Error.Message, expectedErrorMsg,
			"Response error message doesn't contain expected text")
	}
}

// WebhookReply is the JSON the bot returns to Slack.
type WebhookReply struct {
	Text      string `json:"text"`
	LinkNames int    `json:"link_names"`
	Username  string `json:"username"`
	IconEmoji string `json:"icon_emoji"`
}

// AssertWebhookReply checks the reply envelope and returns the message text.
func AssertWebhookReply(t *testing.T, w *httptest.ResponseRecorder) WebhookReply {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code, "unexpected status, body: %s", w.Body.String())

	var reply WebhookReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply), "Failed to decode reply: %s", w.Body.String())
	assert.Equal(t, 1, reply.LinkNames)
	return reply
}
