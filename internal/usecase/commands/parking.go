package commands

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"parkingbot/internal/domain/claim"
	"parkingbot/internal/pkg/config"
	"parkingbot/internal/pkg/errs"
	"parkingbot/internal/usecase"
	"parkingbot/internal/usecase/shared"
)

const (
	MsgBadToken         = "Bad token"
	MsgChannelRefused   = "Sorry, but I can't respond in this channel"
	MsgError            = "Sorry, but I'm not sure what to do with that. Me bad robot. Beep boop :("
	MsgNoUpcomingClaims = "There are no upcoming claims."
	MsgAlreadyUnclaimed = "Looks like the spot is already unclaimed on that day."

	msgWhat           = "What do you want %s? I don't understand what you said. Beep boop."
	msgAlreadyOwned   = "Uhhh, sorry %s, but you've already claimed the spot for that day. Did you forget or am I just a dumb robot? Beep boop."
	msgClaimConflict  = "Sorry %s, but the spot is already claimed on that day by %s"
	msgClaimed        = "Done! @%s - you have claimed %s"
	msgClaimPast      = "Sorry %s, but %s has already passed."
	msgReleased       = "Done! The parking spot is now free on %s"
	msgUnclaimBlocked = "Sorry, but %s has the spot for that day. They need to unclaim it. Beep boop."

	helpTemplate = "Type `%[1]s help` to see the message you're currently looking at.\n" +
		"Type `%[1]s show` to show the upcoming days that have already been claimed.\n" +
		"Type `%[1]s claim <date>` to claim a date. e.g. `%[1]s claim next wednesday` or `%[1]s claim 2016-05-08`.\n" +
		"Type `%[1]s unclaim <date>` to un-claim a date."
)

// Evaluated in this order; the first match wins.
var (
	helpPattern    = regexp.MustCompile(`(?i)^help$`)
	listPattern    = regexp.MustCompile(`(?i)^(?:show|list)$`)
	claimPattern   = regexp.MustCompile(`(?i)^claim (.*)$`)
	unclaimPattern = regexp.MustCompile(`(?i)^unclaim (.*)$`)
)

// Command is one message delivered by the outgoing webhook.
type Command struct {
	Token       string
	TeamID      string
	ChannelID   string
	ChannelName string
	UserID      string
	UserName    string
	Text        string
	TriggerWord string
}

// Body is the command text with the trigger word removed.
func (c Command) Body() string {
	return strings.TrimSpace(strings.Replace(c.Text, c.TriggerWord, "", 1))
}

//go:generate mockgen -source=parking.go -destination=../../../tests/mock/commands/commands.go -package=commandsmock
type ParkingCommands interface {
	// Handle always produces a reply; failures are logged and turned into MsgError.
	Handle(ctx context.Context, cmd Command) string
}

type parkingCommandsImpl struct {
	reservations usecase.ReservationStore
	identities   usecase.IdentityCache
	parser       shared.DateParser
	slack        config.SlackConfig
	logger       *slog.Logger
}

func NewParkingCommands(
	reservations usecase.ReservationStore,
	identities usecase.IdentityCache,
	parser shared.DateParser,
	cfg config.Config,
	logger *slog.Logger,
) ParkingCommands {
	return &parkingCommandsImpl{
		reservations: reservations,
		identities:   identities,
		parser:       parser,
		slack:        cfg.Slack,
		logger:       logger,
	}
}

func (h *parkingCommandsImpl) Handle(ctx context.Context, cmd Command) string {
	text := cmd.Body()

	switch {
	case !h.validToken(cmd.Token):
		return MsgBadToken
	case h.slack.IsChannelBlacklisted(cmd.ChannelName):
		return MsgChannelRefused
	case helpPattern.MatchString(text):
		return fmt.Sprintf(helpTemplate, h.slack.BotUsername)
	case listPattern.MatchString(text):
		return h.list(ctx)
	}

	if m := claimPattern.FindStringSubmatch(text); m != nil {
		return h.claim(ctx, cmd.UserID, m[1])
	}
	if m := unclaimPattern.FindStringSubmatch(text); m != nil {
		return h.unclaim(ctx, cmd.UserID, m[1])
	}
	return h.what(ctx, cmd.UserID)
}

func (h *parkingCommandsImpl) validToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.slack.WebhookToken)) == 1
}

func (h *parkingCommandsImpl) list(ctx context.Context) string {
	claims, err := h.reservations.ListUpcoming(ctx)
	if err != nil {
		return h.fail("list", err)
	}
	if len(claims) == 0 {
		return MsgNoUpcomingClaims
	}

	names := make(map[string]string)
	lines := make([]string, 0, len(claims))
	for _, c := range claims {
		name, ok := names[c.ClaimantID()]
		if !ok {
			name, err = h.identities.Resolve(ctx, c.ClaimantID(), false)
			if err != nil {
				return h.fail("list", err)
			}
			names[c.ClaimantID()] = name
		}
		lines = append(lines, fmt.Sprintf("%s - %s", c.Date(), name))
	}
	return strings.Join(lines, "\n")
}

func (h *parkingCommandsImpl) claim(ctx context.Context, userID, dateText string) string {
	date, ok := h.parser.Parse(dateText)
	if !ok {
		return MsgError
	}
	if strings.TrimSpace(userID) == "" {
		h.logger.Warn("claim without a user id", "date", date.String())
		return MsgError
	}

	name, err := h.identities.Resolve(ctx, userID, false)
	if err != nil {
		return h.fail("claim", err)
	}

	res, err := h.reservations.Claim(ctx, date, userID)
	if err != nil {
		return h.fail("claim", err)
	}

	switch res.Outcome {
	case claim.ClaimAlreadyOwnedBySelf:
		return fmt.Sprintf(msgAlreadyOwned, name)
	case claim.ClaimConflict:
		owner, err := h.identities.Resolve(ctx, res.ExistingClaimantID, false)
		if err != nil {
			return h.fail("claim", err)
		}
		return fmt.Sprintf(msgClaimConflict, name, owner)
	case claim.ClaimPast:
		return fmt.Sprintf(msgClaimPast, name, date)
	default:
		return fmt.Sprintf(msgClaimed, name, date)
	}
}

func (h *parkingCommandsImpl) unclaim(ctx context.Context, userID, dateText string) string {
	date, ok := h.parser.Parse(dateText)
	if !ok {
		return MsgError
	}

	res, err := h.reservations.Unclaim(ctx, date, userID)
	if err != nil {
		return h.fail("unclaim", err)
	}

	switch res.Outcome {
	case claim.UnclaimReleased:
		return fmt.Sprintf(msgReleased, date)
	case claim.UnclaimConflict:
		owner, err := h.identities.Resolve(ctx, res.ExistingClaimantID, false)
		if err != nil {
			return h.fail("unclaim", err)
		}
		return fmt.Sprintf(msgUnclaimBlocked, owner)
	default:
		return MsgAlreadyUnclaimed
	}
}

func (h *parkingCommandsImpl) what(ctx context.Context, userID string) string {
	name, err := h.identities.Resolve(ctx, userID, false)
	if err != nil {
		return h.fail("fallback", err)
	}
	return fmt.Sprintf(msgWhat, name)
}

func (h *parkingCommandsImpl) fail(op string, err error) string {
	h.logger.Error("command failed",
		"op", op,
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, 8),
	)
	return MsgError
}
