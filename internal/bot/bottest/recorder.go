// Package bottest provides a recording bot.Platform for tests.
package bottest

import (
	"context"
	"sync"

	"github.com/AlexYaroshenko/dotless/internal/telegram"
)

// Call is one recorded outbound call.
type Call struct {
	Method    string
	ChatID    int64
	MessageID int64
	QueryID   string
	Text      string
	ParseMode string
	Results   []telegram.InlineQueryResult
}

// Recorder records every call and returns Err (if set) from all of them.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	Err   error
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	return r.Err
}

func parseMode(opts []telegram.MessageOption) string {
	return telegram.ResolveOptions(opts...).ParseMode
}

func (r *Recorder) SendMessage(_ context.Context, chatID int64, text string, opts ...telegram.MessageOption) error {
	return r.record(Call{Method: "sendMessage", ChatID: chatID, Text: text, ParseMode: parseMode(opts)})
}

func (r *Recorder) AnswerInlineQuery(_ context.Context, queryID string, results []telegram.InlineQueryResult) error {
	return r.record(Call{Method: "answerInlineQuery", QueryID: queryID, Results: results})
}

func (r *Recorder) AnswerCallbackQuery(_ context.Context, callbackQueryID, text string) error {
	return r.record(Call{Method: "answerCallbackQuery", QueryID: callbackQueryID, Text: text})
}

func (r *Recorder) EditMessageText(_ context.Context, chatID, messageID int64, text string, opts ...telegram.MessageOption) error {
	return r.record(Call{Method: "editMessageText", ChatID: chatID, MessageID: messageID, Text: text, ParseMode: parseMode(opts)})
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}
