package communication

import (
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

// Notifier posts operator-facing run summaries and failures.
type Notifier interface {
	Info(message string) error
	Error(message string) error
}

type Slack struct {
	client  *slack.Client
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
	// APIURL overrides the Slack endpoint, for tests.
	APIURL string
}

// ConnectSlack returns a Slack notifier, or one that only logs when no bot
// token is configured.
func ConnectSlack(token string, options SlackOption, logger *slog.Logger) Notifier {
	if token == "" {
		return LogNotifier{Logger: logger}
	}
	return NewSlack(token, options)
}

func NewSlack(token string, options SlackOption) *Slack {
	var opts []slack.Option
	if options.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(options.APIURL))
	}
	client := slack.New(token, opts...)
	return &Slack{client: client, options: options}
}

func (s *Slack) postMessage(channelID, message string) error {
	if channelID == "" {
		return nil
	}
	_, _, err := s.client.PostMessage(
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (s *Slack) Info(message string) error {
	return s.postMessage(s.options.InfoChannelID, message)
}

func (s *Slack) Error(message string) error {
	return s.postMessage(s.options.ErrorChannelID, message)
}

type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}

func (n LogNotifier) Info(message string) error {
	n.logger().Info(message)
	return nil
}

func (n LogNotifier) Error(message string) error {
	n.logger().Error(message)
	return nil
}
