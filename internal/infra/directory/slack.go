package directory

import (
	"context"
	"errors"
	"net/http"
	"time"

	"parkingbot/internal/domain/identity"
	"parkingbot/internal/infra"
	"parkingbot/internal/pkg/config"
	"parkingbot/internal/pkg/errs"

	"github.com/slack-go/slack"
)

const (
	defaultTimeout   = 5 * time.Second
	slackErrNotFound = "user_not_found"
)

// SlackDirectory looks users up with the users.info Web API method.
type SlackDirectory struct {
	client  *slack.Client
	token   string
	timeout time.Duration
}

func NewSlackDirectory(cfg config.Config) *SlackDirectory {
	timeout := cfg.Directory.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []slack.Option{
		slack.OptionHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.Slack.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.Slack.APIURL))
	}

	return &SlackDirectory{
		client:  slack.New(cfg.Slack.APIToken, opts...),
		token:   cfg.Slack.APIToken,
		timeout: timeout,
	}
}

func (d *SlackDirectory) Lookup(ctx context.Context, userID string) (*identity.Record, error) {
	if d.token == "" {
		return nil, errs.Mark(errs.New("no API token configured"), errs.ErrDirectoryUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	user, err := d.client.GetUserInfoContext(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.ErrUserNotFound
		}
		wrapped := infra.WrapStoreErr(infra.KindDirectoryFailure, "users.info "+userID, err)
		return nil, errs.Mark(wrapped, errs.ErrDirectoryUnavailable)
	}
	if user == nil {
		return nil, errs.ErrUserNotFound
	}

	return &identity.Record{
		ID:        userID,
		Name:      user.Name,
		RealName:  user.Profile.RealName,
		FirstName: user.Profile.FirstName,
		LastName:  user.Profile.LastName,
	}, nil
}

func isNotFound(err error) bool {
	var apiErr slack.SlackErrorResponse
	if errors.As(err, &apiErr) {
		return apiErr.Err == slackErrNotFound
	}
	return err.Error() == slackErrNotFound
}
