package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tensorbench/internal/benchmark"

	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

const defaultChannel = "#benchmarks"

// ErrDisabled is returned by NewFromConfig when Slack notifications are
// switched off or no bot token is available.
var ErrDisabled = errors.New("slack notifications disabled")

// Poster is the subset of the Slack API used to publish results.
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts comparison results to a Slack channel.
type SlackNotifier struct {
	client    Poster
	channelID string
}

// NewSlackNotifier creates a notifier backed by a Slack bot token.
func NewSlackNotifier(token, channelID string, options ...slack.Option) *SlackNotifier {
	return NewSlackNotifierWithClient(slack.New(token, options...), channelID)
}

// NewSlackNotifierWithClient creates a notifier around an existing client.
func NewSlackNotifierWithClient(client Poster, channelID string) *SlackNotifier {
	if channelID == "" {
		channelID = defaultChannel
	}
	return &SlackNotifier{client: client, channelID: channelID}
}

// NewFromConfig builds a notifier from the notifications.slack.* settings
// and SLACK_BOT_USER_TOKEN.
func NewFromConfig() (*SlackNotifier, error) {
	if !viper.GetBool("notifications.slack.enabled") {
		return nil, ErrDisabled
	}
	token := os.Getenv("SLACK_BOT_USER_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("%w: SLACK_BOT_USER_TOKEN not set", ErrDisabled)
	}
	return NewSlackNotifier(token, viper.GetString("notifications.slack.channel")), nil
}

// Notify posts the summary as a new message and, when details is non-empty,
// threads the details under it. It returns the timestamp of the summary.
func (s *SlackNotifier) Notify(ctx context.Context, summary, details string) (string, error) {
	_, ts, err := s.client.PostMessageContext(ctx, s.channelID, slack.MsgOptionText(summary, false))
	if err != nil {
		return "", fmt.Errorf("failed to post slack summary: %w", err)
	}

	if details == "" {
		return ts, nil
	}

	_, _, err = s.client.PostMessageContext(ctx, s.channelID,
		slack.MsgOptionText(details, false),
		slack.MsgOptionTS(ts),
	)
	if err != nil {
		return ts, fmt.Errorf("failed to post slack details: %w", err)
	}
	return ts, nil
}

// Summary renders a short text digest of a comparison report.
func Summary(r *benchmark.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s vs %s*\n", r.ReferenceName, r.OtherName)

	speedups := r.Speedups()
	if len(speedups) == 0 {
		b.WriteString("No common operations to compare.")
		return b.String()
	}

	faster := 0
	for _, s := range speedups {
		if s.Faster() {
			faster++
		}
		fmt.Fprintf(&b, "• %s\n", s)
	}
	fmt.Fprintf(&b, "%s faster on %d of %d operations", r.ReferenceName, faster, len(speedups))
	return b.String()
}
