package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.telegram.org"

// Client issues Bot API calls. The send/answer/edit calls are fire and
// forget: a non-2xx answer is logged, never returned as an error.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

// WithBaseURL points the client at another Bot API server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// post sends body as JSON and returns the status code and raw response.
func (c *Client) post(ctx context.Context, method string, body any) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: marshal: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("%s: new request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s: read body: %w", method, err)
	}
	return resp.StatusCode, respBody, nil
}

// fire posts and only logs unsuccessful statuses.
func (c *Client) fire(ctx context.Context, method string, body any) error {
	c.logger.Debug("telegram API call", "component", "telegram", "operation", method)
	status, respBody, err := c.post(ctx, method, body)
	if err != nil {
		return err
	}
	if status > 299 {
		c.logger.Warn("telegram API returned non-2xx",
			"component", "telegram", "operation", method, "status", status, "body", string(respBody))
	}
	return nil
}

// call posts and decodes the result, failing when the API says ok=false.
func call[T any](ctx context.Context, c *Client, method string, body any) (T, error) {
	var zero T
	c.logger.Debug("telegram API call", "component", "telegram", "operation", method)
	status, respBody, err := c.post(ctx, method, body)
	if err != nil {
		return zero, err
	}
	var resp apiResponse[T]
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return zero, fmt.Errorf("%s: status %d: unmarshal: %w", method, status, err)
	}
	if !resp.OK {
		return zero, fmt.Errorf("%s: status %d: %s", method, status, resp.Description)
	}
	return resp.Result, nil
}

type sendMessageRequest struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview *bool  `json:"disable_web_page_preview,omitempty"`
}

type editMessageTextRequest struct {
	ChatID                int64  `json:"chat_id,omitempty"`
	MessageID             int64  `json:"message_id,omitempty"`
	InlineMessageID       string `json:"inline_message_id,omitempty"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview *bool  `json:"disable_web_page_preview,omitempty"`
}

// MessageOption tunes how a sent or edited message is rendered.
type MessageOption func(*MessageOptions)

// MessageOptions is the resolved form of a MessageOption list.
type MessageOptions struct {
	ParseMode             string
	DisableWebPagePreview *bool
}

func WithParseMode(mode string) MessageOption {
	return func(o *MessageOptions) { o.ParseMode = mode }
}

func WithoutWebPagePreview() MessageOption {
	return func(o *MessageOptions) {
		disable := true
		o.DisableWebPagePreview = &disable
	}
}

func ResolveOptions(opts ...MessageOption) MessageOptions {
	var o MessageOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SendMessage sends text to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts ...MessageOption) error {
	o := ResolveOptions(opts...)
	return c.fire(ctx, "sendMessage", sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             o.ParseMode,
		DisableWebPagePreview: o.DisableWebPagePreview,
	})
}

func (c *Client) AnswerInlineQuery(ctx context.Context, queryID string, results []InlineQueryResult) error {
	if results == nil {
		results = []InlineQueryResult{}
	}
	return c.fire(ctx, "answerInlineQuery", struct {
		InlineQueryID string              `json:"inline_query_id"`
		Results       []InlineQueryResult `json:"results"`
	}{queryID, results})
}

// AnswerCallbackQuery acknowledges a button press; text may be empty.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string) error {
	return c.fire(ctx, "answerCallbackQuery", struct {
		CallbackQueryID string `json:"callback_query_id"`
		Text            string `json:"text,omitempty"`
	}{callbackQueryID, text})
}

func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string, opts ...MessageOption) error {
	o := ResolveOptions(opts...)
	return c.fire(ctx, "editMessageText", editMessageTextRequest{
		ChatID:                chatID,
		MessageID:             messageID,
		Text:                  text,
		ParseMode:             o.ParseMode,
		DisableWebPagePreview: o.DisableWebPagePreview,
	})
}

// EditInlineMessageText edits a message that was sent via an inline result.
func (c *Client) EditInlineMessageText(ctx context.Context, inlineMessageID, text string, opts ...MessageOption) error {
	o := ResolveOptions(opts...)
	return c.fire(ctx, "editMessageText", editMessageTextRequest{
		InlineMessageID:       inlineMessageID,
		Text:                  text,
		ParseMode:             o.ParseMode,
		DisableWebPagePreview: o.DisableWebPagePreview,
	})
}

// GetMe returns the bot's own user.
func (c *Client) GetMe(ctx context.Context) (User, error) {
	return call[User](ctx, c, "getMe", struct{}{})
}

// SetWebhook registers url as the update destination. A non-empty secret is
// echoed back by Telegram in the X-Telegram-Bot-Api-Secret-Token header.
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	_, err := call[bool](ctx, c, "setWebhook", struct {
		URL            string   `json:"url"`
		SecretToken    string   `json:"secret_token,omitempty"`
		AllowedUpdates []string `json:"allowed_updates"`
	}{url, secret, []string{KindMessage, KindInlineQuery, KindCallbackQuery, KindChosenInlineResult}})
	return err
}

func (c *Client) DeleteWebhook(ctx context.Context) error {
	_, err := call[bool](ctx, c, "deleteWebhook", struct{}{})
	return err
}

func (c *Client) GetWebhookInfo(ctx context.Context) (WebhookInfo, error) {
	return call[WebhookInfo](ctx, c, "getWebhookInfo", struct{}{})
}

// FormatUserName renders a user for logs and replies.
func FormatUserName(user *User) string {
	if user == nil {
		return "Unknown"
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	if user.FirstName != "" {
		if user.LastName != "" {
			return fmt.Sprintf("%s %s", user.FirstName, user.LastName)
		}
		return user.FirstName
	}
	return "Unknown"
}
