package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// DefaultTelegramEndpoint is the Bot API base URL.
const DefaultTelegramEndpoint = "https://api.telegram.org"

// Submission is one visitor message headed for the bot relay.
type Submission struct {
	BotToken   string      `json:"-"`
	ChatID     string      `json:"-"`
	WidgetID   string      `json:"widgetId,omitempty"`
	WidgetName string      `json:"widgetName"`
	Channel    ChannelType `json:"channel"`
	Contact    string      `json:"contact"`
	Message    string      `json:"message"`
	Preview    bool        `json:"preview,omitempty"`
	At         time.Time   `json:"at"`
}

// Transport delivers submissions.
type Transport interface {
	Submit(ctx context.Context, sub Submission) error
}

// NotificationFormat holds the fixed labels of the relayed notification.
type NotificationFormat struct {
	Heading   string `json:"heading"`
	Widget    string `json:"widget"`
	Channel   string `json:"channel"`
	Contact   string `json:"contact"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	ParseMode string `json:"parseMode"`
}

// DefaultNotificationFormat returns the stock notification labels.
func DefaultNotificationFormat() NotificationFormat {
	return NotificationFormat{
		Heading:   "🔥 <b>New Lead from Website</b>",
		Widget:    "🧩 <b>Widget:</b>",
		Channel:   "📣 <b>Channel:</b>",
		Contact:   "👤 <b>Contact:</b>",
		Message:   "💬 <b>Message:</b>",
		Timestamp: "Timestamp:",
		ParseMode: tgbotapi.ModeHTML,
	}
}

// ComposeNotification renders the HTML text sent to the relay. The message
// line is omitted when the message is empty. Timestamps use the HTTP date
// format, which matches Date.prototype.toUTCString.
func ComposeNotification(sub Submission) string {
	format := DefaultNotificationFormat()
	at := sub.At
	if at.IsZero() {
		at = time.Now()
	}
	lines := []string{
		format.Heading,
		"",
		format.Widget + " " + html.EscapeString(sub.WidgetName),
		format.Channel + " " + strings.ToUpper(string(sub.Channel)),
		format.Contact + " <code>" + html.EscapeString(sub.Contact) + "</code>",
	}
	if message := TrimBlank(sub.Message); message != "" {
		lines = append(lines, format.Message+" "+html.EscapeString(message))
	}
	lines = append(lines, "", "<i>"+format.Timestamp+" "+at.UTC().Format(http.TimeFormat)+"</i>")
	return strings.Join(lines, "\n")
}

// TelegramConfig configures TelegramTransport.
type TelegramConfig struct {
	Endpoint   string
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// TelegramTransport posts notifications to the Telegram Bot API sendMessage
// method. It makes exactly one attempt per submission.
type TelegramTransport struct {
	endpoint string
	client   *http.Client
	logger   logrus.FieldLogger
}

var _ Transport = (*TelegramTransport)(nil)

// NewTelegramTransport builds the transport with safe defaults.
func NewTelegramTransport(cfg TelegramConfig) *TelegramTransport {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultTelegramEndpoint
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &TelegramTransport{
		endpoint: endpoint,
		client:   client,
		logger:   normalizeLogger(cfg.Logger),
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Submit sends the composed notification.
func (t *TelegramTransport) Submit(ctx context.Context, sub Submission) error {
	if TrimBlank(sub.BotToken) == "" || TrimBlank(sub.ChatID) == "" {
		return ErrMissingCredentials
	}
	payload := sendMessageRequest{
		ChatID:    TrimBlank(sub.ChatID),
		Text:      ComposeNotification(sub),
		ParseMode: tgbotapi.ModeHTML,
	}
	var resp tgbotapi.APIResponse
	if err := t.do(ctx, "/bot"+TrimBlank(sub.BotToken)+"/sendMessage", payload, &resp); err != nil {
		t.logger.WithFields(logrus.Fields{
			"widget_id": sub.WidgetID,
			"channel":   sub.Channel,
		}).WithError(err).Warn("hub: telegram delivery failed")
		return err
	}
	return nil
}

func (t *TelegramTransport) do(ctx context.Context, path string, payload any, target *tgbotapi.APIResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("hub: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("hub: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &NetworkError{Err: err}
	}
	decodeErr := json.Unmarshal(raw, target)
	if resp.StatusCode >= 300 || decodeErr != nil || !target.Ok {
		description := ""
		if decodeErr == nil {
			description = target.Description
		}
		if description == "" {
			description = DefaultPanelCopy().APIFailed
		}
		return &APIError{Status: resp.StatusCode, Description: description}
	}
	return nil
}

func normalizeLogger(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}
