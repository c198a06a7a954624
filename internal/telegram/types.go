package telegram

// Update types needed for webhook handling. Only the fields the bot reads
// are declared.

type Update struct {
	UpdateID           int64               `json:"update_id"`
	Message            *Message            `json:"message,omitempty"`
	ChannelPost        *Message            `json:"channel_post,omitempty"`
	InlineQuery        *InlineQuery        `json:"inline_query,omitempty"`
	ChosenInlineResult *ChosenInlineResult `json:"chosen_inline_result,omitempty"`
	CallbackQuery      *CallbackQuery      `json:"callback_query,omitempty"`
}

// Update kinds as reported by Update.Kind.
const (
	KindMessage            = "message"
	KindChannelPost        = "channel_post"
	KindInlineQuery        = "inline_query"
	KindCallbackQuery      = "callback_query"
	KindChosenInlineResult = "chosen_inline_result"
)

// Kind names the payload carried by the update, or "" if it carries none
// the bot knows about.
func (u *Update) Kind() string {
	switch {
	case u.Message != nil:
		return KindMessage
	case u.ChannelPost != nil:
		return KindChannelPost
	case u.InlineQuery != nil:
		return KindInlineQuery
	case u.CallbackQuery != nil:
		return KindCallbackQuery
	case u.ChosenInlineResult != nil:
		return KindChosenInlineResult
	}
	return ""
}

type Message struct {
	MessageID int64       `json:"message_id"`
	From      *User       `json:"from,omitempty"`
	Chat      Chat        `json:"chat"`
	Date      int64       `json:"date"`
	Text      string      `json:"text,omitempty"`
	Document  *FileRef    `json:"document,omitempty"`
	Photo     []PhotoSize `json:"photo,omitempty"`
	Video     *FileRef    `json:"video,omitempty"`
	Audio     *FileRef    `json:"audio,omitempty"`
	Voice     *FileRef    `json:"voice,omitempty"`
}

// Sender returns the author of the message, or nil for anonymous posts.
func (m *Message) Sender() *User { return m.From }

// IsPrivate reports whether the message was sent in a one-to-one chat.
func (m *Message) IsPrivate() bool { return m.Chat.Type == ChatPrivate }

type InlineQuery struct {
	ID     string `json:"id"`
	From   *User  `json:"from,omitempty"`
	Query  string `json:"query"`
	Offset string `json:"offset"`
}

func (q *InlineQuery) Sender() *User { return q.From }

type ChosenInlineResult struct {
	ResultID        string `json:"result_id"`
	From            *User  `json:"from,omitempty"`
	InlineMessageID string `json:"inline_message_id,omitempty"`
	Query           string `json:"query"`
}

type CallbackQuery struct {
	ID              string   `json:"id"`
	From            *User    `json:"from,omitempty"`
	Message         *Message `json:"message,omitempty"`
	InlineMessageID string   `json:"inline_message_id,omitempty"`
	ChatInstance    string   `json:"chat_instance"`
	Data            string   `json:"data"`
}

func (q *CallbackQuery) Sender() *User { return q.From }

type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

const ChatPrivate = "private"

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type FileRef struct {
	FileID string `json:"file_id"`
}

type PhotoSize struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size,omitempty"`
}

// InlineQueryResult is an "article" result for answerInlineQuery.
type InlineQueryResult struct {
	Type                string                `json:"type"`
	ID                  string                `json:"id"`
	Title               string                `json:"title"`
	Description         string                `json:"description,omitempty"`
	InputMessageContent InputMessageContent   `json:"input_message_content"`
	ReplyMarkup         *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

const ResultArticle = "article"

type InputMessageContent struct {
	MessageText string `json:"message_text"`
	ParseMode   string `json:"parse_mode,omitempty"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
}

// ParseModeMarkdownV2 is the parse mode error replies are sent with.
const ParseModeMarkdownV2 = "MarkdownV2"

// WebhookInfo is the result of getWebhookInfo.
type WebhookInfo struct {
	URL                  string `json:"url"`
	HasCustomCertificate bool   `json:"has_custom_certificate"`
	PendingUpdateCount   int    `json:"pending_update_count"`
	LastErrorDate        int64  `json:"last_error_date,omitempty"`
	LastErrorMessage     string `json:"last_error_message,omitempty"`
	MaxConnections       int    `json:"max_connections,omitempty"`
}

// apiResponse is the envelope every Bot API method answers with.
type apiResponse[T any] struct {
	OK          bool   `json:"ok"`
	Result      T      `json:"result"`
	Description string `json:"description,omitempty"`
}
