package bot

import (
	"context"
	"strings"

	"github.com/AlexYaroshenko/dotless/internal/i18n"
	"github.com/AlexYaroshenko/dotless/internal/telegram"
	"github.com/AlexYaroshenko/dotless/internal/textutil"
)

const startCommand = "/start"

// Inline result ids.
const (
	ResultDefault  = "default"
	ResultReplacer = "replacer"
)

// DefaultRegistry registers the bot's handlers. Within a category the
// predicates are mutually exclusive, so order only matters for readability;
// keep it that way when adding handlers.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.RegisterMessage(StartHandler)
	r.RegisterMessage(PassthroughHandler)

	r.RegisterInline(TransformInlineHandler)
	r.RegisterInline(DefaultInlineHandler)

	return r
}

func isStart(text string) bool {
	return strings.HasPrefix(text, startCommand)
}

// copyFor returns localized copy with its dots removed, matching the bot's
// own voice.
func copyFor(u *telegram.User, key string) string {
	lang := i18n.Default
	if u != nil {
		lang = i18n.Lang(u.LanguageCode)
	}
	return textutil.RemoveDots(i18n.T(lang, key))
}

// StartHandler greets users who send /start.
var StartHandler = Handler[*telegram.Message]{
	Name: "start",
	CanHandle: func(m *telegram.Message) bool {
		return isStart(m.Text)
	},
	Handle: func(ctx context.Context, m *telegram.Message, p Platform) error {
		return p.SendMessage(ctx, m.Chat.ID, copyFor(m.From, "start"))
	},
	Public: true,
}

// PassthroughHandler echoes any other text back without its dots. Messages
// without text never match.
var PassthroughHandler = Handler[*telegram.Message]{
	Name: "passthrough",
	CanHandle: func(m *telegram.Message) bool {
		return !isStart(m.Text) && textutil.HasDots(m.Text)
	},
	Handle: func(ctx context.Context, m *telegram.Message, p Platform) error {
		return p.SendMessage(ctx, m.Chat.ID, textutil.RemoveDots(m.Text))
	},
	Public: true,
}

// TransformInlineHandler answers a non-empty inline query with its dotless
// form.
var TransformInlineHandler = Handler[*telegram.InlineQuery]{
	Name: "transform-inline",
	CanHandle: func(q *telegram.InlineQuery) bool {
		return strings.TrimSpace(q.Query) != ""
	},
	Handle: func(ctx context.Context, q *telegram.InlineQuery, p Platform) error {
		return p.AnswerInlineQuery(ctx, q.ID, []telegram.InlineQueryResult{{
			Type:        telegram.ResultArticle,
			ID:          ResultReplacer,
			Title:       copyFor(q.From, "inline_replacer_title"),
			Description: copyFor(q.From, "inline_replacer_description"),
			InputMessageContent: telegram.InputMessageContent{
				MessageText: textutil.RemoveDots(q.Query),
			},
		}})
	},
	Public: true,
}

// DefaultInlineHandler explains usage when the inline query is blank.
var DefaultInlineHandler = Handler[*telegram.InlineQuery]{
	Name: "default-inline",
	CanHandle: func(q *telegram.InlineQuery) bool {
		return strings.TrimSpace(q.Query) == ""
	},
	Handle: func(ctx context.Context, q *telegram.InlineQuery, p Platform) error {
		return p.AnswerInlineQuery(ctx, q.ID, []telegram.InlineQueryResult{{
			Type:        telegram.ResultArticle,
			ID:          ResultDefault,
			Title:       copyFor(q.From, "inline_default_title"),
			Description: copyFor(q.From, "inline_default_description"),
			InputMessageContent: telegram.InputMessageContent{
				MessageText: copyFor(q.From, "inline_default_text"),
			},
		}})
	},
	Public: true,
}
