//go:build e2e

package parking_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"parkingbot/internal/domain/claim"
	resdto "parkingbot/internal/handler/dto/response"
	"parkingbot/tests/common/builder"
	"parkingbot/tests/common/httptest"
	"parkingbot/tests/e2e"

	"github.com/stretchr/testify/suite"
)

type ParkingE2ETestSuite struct {
	e2e.SharedSuite
}

func TestParkingE2EPostgres(t *testing.T) {
	suite.Run(t, &ParkingE2ETestSuite{SharedSuite: e2e.SharedSuite{NewConfig: e2e.PostgresConfig}})
}

func TestParkingE2ERedis(t *testing.T) {
	suite.Run(t, &ParkingE2ETestSuite{SharedSuite: e2e.SharedSuite{NewConfig: e2e.RedisConfig}})
}

func (s *ParkingE2ETestSuite) today() claim.Date {
	return claim.DateOf(time.Now().In(s.Config.App.Location()))
}

func (s *ParkingE2ETestSuite) say(userID, text string) string {
	form := builder.WebhookForm(s.Config.Slack.WebhookToken, "parking", userID, text)
	rec := httptest.PerformFormPost(s.T(), s.Router, "/", form)
	return httptest.AssertWebhookReply(s.T(), rec).Text
}

func (s *ParkingE2ETestSuite) TestClaimLifecycle() {
	s.Run("claim, conflict, list and release", func() {
		d := s.today().AddDays(3).String()
		tomorrow := s.today().AddDays(1).String()

		s.Equal("There are no upcoming claims.", s.say("U1", "parkingbot show"))

		s.Equal("Done! @Mike - you have claimed "+d, s.say("U1", "parkingbot claim "+d))
		s.Equal("Sorry Bob, but the spot is already claimed on that day by Mike", s.say("U2", "parkingbot claim "+d))
		s.Contains(s.say("U1", "parkingbot claim "+d), "you've already claimed the spot for that day")
		s.Equal("Done! @Mike - you have claimed "+tomorrow, s.say("U1", "parkingbot claim "+tomorrow))

		s.Equal(fmt.Sprintf("%s - Mike\n%s - Mike", tomorrow, d), s.say("U2", "parkingbot list"))

		s.Equal("Sorry, but Mike has the spot for that day. They need to unclaim it. Beep boop.", s.say("U2", "parkingbot unclaim "+d))
		s.Equal("Done! The parking spot is now free on "+d, s.say("U1", "parkingbot unclaim "+d))
		s.Equal("Looks like the spot is already unclaimed on that day.", s.say("U1", "parkingbot unclaim "+d))

		s.Equal(tomorrow+" - Mike", s.say("U3", "parkingbot show"))
	})

	s.Run("past claims are pruned by listing", func() {
		ctx := context.Background()
		yesterday := s.today().AddDays(-1)
		s.Require().NoError(s.KV.Set(ctx, claim.Key(yesterday), "U2", 0))

		s.Equal("There are no upcoming claims.", s.say("U1", "parkingbot show"))

		_, found, err := s.KV.Get(ctx, claim.Key(yesterday))
		s.Require().NoError(err)
		s.False(found)
	})

	s.Run("past dates cannot be claimed", func() {
		yesterday := s.today().AddDays(-1).String()
		s.Equal(fmt.Sprintf("Sorry Mike, but %s has already passed.", yesterday), s.say("U1", "parkingbot claim "+yesterday))
	})
}

func (s *ParkingE2ETestSuite) TestIdentities() {
	s.Run("names are cached for thirty days", func() {
		s.Contains(s.say("U3", "parkingbot dance"), "What do you want cdoe?")

		raw, found, err := s.KV.Get(context.Background(), "slack_user_names:2:U3")
		s.Require().NoError(err)
		s.True(found)
		s.JSONEq(`{"id":"U3","name":"cdoe"}`, raw)
	})

	s.Run("unknown users become the sentinel", func() {
		s.Equal("What do you want Sean Connery? I don't understand what you said. Beep boop.", s.say("U404", "parkingbot dance"))
	})
}

func (s *ParkingE2ETestSuite) TestGuards() {
	s.Run("bad token", func() {
		form := builder.WebhookForm("wrong", "parking", "U1", "parkingbot show")
		rec := httptest.PerformFormPost(s.T(), s.Router, "/", form)
		s.Equal("Bad token", httptest.AssertWebhookReply(s.T(), rec).Text)
	})

	s.Run("blacklisted channel", func() {
		form := builder.WebhookForm(s.Config.Slack.WebhookToken, "random", "U1", "parkingbot show")
		rec := httptest.PerformFormPost(s.T(), s.Router, "/", form)
		s.Equal("Sorry, but I can't respond in this channel", httptest.AssertWebhookReply(s.T(), rec).Text)
	})
}

func (s *ParkingE2ETestSuite) TestClaimsAPI() {
	s.Run("lists claims with full names", func() {
		d := s.today().AddDays(2).String()
		s.Contains(s.say("U2", "parkingbot claim "+d), "you have claimed")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/claims", nil, s.Config.Slack.WebhookToken)

		var got []resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal([]resdto.ClaimResponse{{Date: d, ClaimantID: "U2", ClaimantName: "Bob Smith"}}, got)
	})

	s.Run("rejects requests without the token", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/claims", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})
}
