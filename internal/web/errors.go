package web

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/AlexYaroshenko/dotless/internal/i18n"
	"github.com/AlexYaroshenko/dotless/internal/telegram"
	"github.com/AlexYaroshenko/dotless/internal/textutil"
)

// errorResultID is the inline result id used when a query fails.
const errorResultID = "error"

func langOf(u *telegram.User) string {
	if u == nil {
		return i18n.Default
	}
	return i18n.Lang(u.LanguageCode)
}

// errorText renders a MarkdownV2 error report carrying the reference the
// failure was logged under.
func errorText(lang string, err error, ref string) string {
	var b strings.Builder
	b.WriteString("*" + textutil.EscapeMarkdownV2(i18n.Plain(lang, "error_title")) + "*\n\n")
	b.WriteString("*" + textutil.EscapeMarkdownV2(i18n.Plain(lang, "error_label")) + ":* ")
	b.WriteString("`" + textutil.EscapeMarkdownV2(textutil.CutDown(err.Error())) + "`\n\n")
	b.WriteString(textutil.EscapeMarkdownV2(i18n.Plain(lang, "error_hint")) + "\n")
	b.WriteString(textutil.EscapeMarkdownV2(i18n.Plain(lang, "error_reference")) + ": `" + ref + "`")
	return b.String()
}

func newReference() string {
	return uuid.NewString()
}

func (s *Server) replyMessageError(ctx context.Context, logger *slog.Logger, m *telegram.Message, err error) {
	ref := newReference()
	logger.Error("message handler failed", "error", err, "ref", ref, "chat_id", m.Chat.ID)

	text := errorText(langOf(m.From), err, ref)
	if rerr := s.platform.SendMessage(ctx, m.Chat.ID, text, telegram.WithParseMode(telegram.ParseModeMarkdownV2)); rerr != nil {
		logger.Warn("sending error reply failed", "error", rerr, "ref", ref)
	}
}

func (s *Server) replyInlineError(ctx context.Context, logger *slog.Logger, q *telegram.InlineQuery, err error) {
	ref := newReference()
	logger.Error("inline handler failed", "error", err, "ref", ref, "query_id", q.ID)

	lang := langOf(q.From)
	result := telegram.InlineQueryResult{
		Type:        telegram.ResultArticle,
		ID:          errorResultID,
		Title:       i18n.Plain(lang, "error_result_title"),
		Description: i18n.Plain(lang, "error_result_description"),
		InputMessageContent: telegram.InputMessageContent{
			MessageText: errorText(lang, err, ref),
			ParseMode:   telegram.ParseModeMarkdownV2,
		},
	}
	if rerr := s.platform.AnswerInlineQuery(ctx, q.ID, []telegram.InlineQueryResult{result}); rerr != nil {
		logger.Warn("answering inline query with error failed", "error", rerr, "ref", ref)
	}
}

func (s *Server) replyCallbackError(ctx context.Context, logger *slog.Logger, q *telegram.CallbackQuery, err error) {
	ref := newReference()
	logger.Error("callback handler failed", "error", err, "ref", ref, "callback_id", q.ID)

	lang := langOf(q.From)
	alert := "❌ " + i18n.Plain(lang, "error_label") + ": " + textutil.CutDown(err.Error())
	if rerr := s.platform.AnswerCallbackQuery(ctx, q.ID, alert); rerr != nil {
		logger.Warn("answering callback query with error failed", "error", rerr, "ref", ref)
	}
	if q.Message == nil {
		return
	}
	text := errorText(lang, err, ref)
	if rerr := s.platform.SendMessage(ctx, q.Message.Chat.ID, text, telegram.WithParseMode(telegram.ParseModeMarkdownV2)); rerr != nil {
		logger.Warn("sending error reply failed", "error", rerr, "ref", ref)
	}
}
