package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/AlexYaroshenko/dotless/internal/bot/bottest"
	"github.com/AlexYaroshenko/dotless/internal/i18n"
	"github.com/AlexYaroshenko/dotless/internal/telegram"
	"github.com/AlexYaroshenko/dotless/internal/textutil"
)

func privateMessage(text string) *telegram.Message {
	return &telegram.Message{
		MessageID: 7,
		From:      &telegram.User{ID: 99, FirstName: "Sara"},
		Chat:      telegram.Chat{ID: 4242, Type: telegram.ChatPrivate},
		Text:      text,
	}
}

func TestDefaultRegistryMessages(t *testing.T) {
	tests := []struct {
		name        string
		msg         *telegram.Message
		wantHandler string
		wantText    string
	}{
		{
			name:        "start command",
			msg:         privateMessage("/start"),
			wantHandler: "start",
			wantText:    copyFor(&telegram.User{}, "start"),
		},
		{
			name:        "start with payload",
			msg:         privateMessage("/start ref.1"),
			wantHandler: "start",
			wantText:    copyFor(&telegram.User{}, "start"),
		},
		{
			name:        "dotted text",
			msg:         privateMessage("سلام بچه‌ها"),
			wantHandler: "passthrough",
			wantText:    textutil.RemoveDots("سلام بچه‌ها"),
		},
		{
			name:        "latin with dots",
			msg:         privateMessage("Hi.There"),
			wantHandler: "passthrough",
			wantText:    "Hı There",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &bottest.Recorder{}
			res, err := DefaultRegistry().DispatchMessage(context.Background(), tt.msg, rec, nil)
			if err != nil {
				t.Fatalf("DispatchMessage: %v", err)
			}
			if res.Handler != tt.wantHandler || res.Outcome != Handled {
				t.Errorf("result = %+v, want %s/handled", res, tt.wantHandler)
			}
			calls := rec.Calls()
			if len(calls) != 1 {
				t.Fatalf("calls = %d, want 1", len(calls))
			}
			if calls[0].Method != "sendMessage" || calls[0].ChatID != 4242 {
				t.Errorf("call = %+v, want sendMessage to 4242", calls[0])
			}
			if calls[0].Text != tt.wantText {
				t.Errorf("text = %q, want %q", calls[0].Text, tt.wantText)
			}
		})
	}
}

func TestDefaultRegistryMessagesWithoutAction(t *testing.T) {
	tests := []struct {
		name string
		msg  *telegram.Message
	}{
		{name: "nothing to transform", msg: privateMessage("abc")},
		{
			name: "attachment without text",
			msg: &telegram.Message{
				From:  &telegram.User{ID: 1},
				Chat:  telegram.Chat{ID: 1, Type: telegram.ChatPrivate},
				Photo: []telegram.PhotoSize{{FileID: "f"}},
			},
		},
		{name: "empty text", msg: privateMessage("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &bottest.Recorder{}
			res, err := DefaultRegistry().DispatchMessage(context.Background(), tt.msg, rec, nil)
			if err != nil {
				t.Fatalf("DispatchMessage: %v", err)
			}
			if res.Outcome != NoMatch {
				t.Errorf("outcome = %v, want no_match", res.Outcome)
			}
			if len(rec.Calls()) != 0 {
				t.Errorf("unexpected calls: %+v", rec.Calls())
			}
		})
	}
}

func TestStartCopyFollowsLanguage(t *testing.T) {
	msg := privateMessage("/start")
	msg.From.LanguageCode = "en-US"

	rec := &bottest.Recorder{}
	if _, err := DefaultRegistry().DispatchMessage(context.Background(), msg, rec, nil); err != nil {
		t.Fatalf("DispatchMessage: %v", err)
	}
	want := textutil.RemoveDots(i18n.T(i18n.English, "start"))
	if got := rec.Calls()[0].Text; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestDefaultRegistryInline(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantID   string
		wantText string
		handler  string
	}{
		{name: "empty", query: "", wantID: ResultDefault, handler: "default-inline",
			wantText: copyFor(nil, "inline_default_text")},
		{name: "whitespace", query: "  \t ", wantID: ResultDefault, handler: "default-inline",
			wantText: copyFor(nil, "inline_default_text")},
		{name: "text", query: "Hi.There", wantID: ResultReplacer, handler: "transform-inline",
			wantText: textutil.RemoveDots("Hi.There")},
		{name: "markdown-looking text", query: "*bold* _x_", wantID: ResultReplacer, handler: "transform-inline",
			wantText: "*bold* _x_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &bottest.Recorder{}
			q := &telegram.InlineQuery{ID: "iq-1", From: &telegram.User{ID: 5}, Query: tt.query}
			res, err := DefaultRegistry().DispatchInline(context.Background(), q, rec, nil)
			if err != nil {
				t.Fatalf("DispatchInline: %v", err)
			}
			if res.Handler != tt.handler {
				t.Errorf("handler = %q, want %q", res.Handler, tt.handler)
			}
			calls := rec.Calls()
			if len(calls) != 1 || calls[0].Method != "answerInlineQuery" || calls[0].QueryID != "iq-1" {
				t.Fatalf("calls = %+v", calls)
			}
			results := calls[0].Results
			if len(results) != 1 {
				t.Fatalf("results = %d, want 1", len(results))
			}
			r := results[0]
			if r.ID != tt.wantID || r.Type != telegram.ResultArticle {
				t.Errorf("result = %+v", r)
			}
			if r.InputMessageContent.MessageText != tt.wantText {
				t.Errorf("message_text = %q, want %q", r.InputMessageContent.MessageText, tt.wantText)
			}
			if r.InputMessageContent.ParseMode != "" {
				t.Errorf("parse_mode = %q, want none", r.InputMessageContent.ParseMode)
			}
			if r.Title == "" || strings.ContainsAny(r.Title, "<>") {
				t.Errorf("title = %q", r.Title)
			}
		})
	}
}

func TestMessagePredicatesMutuallyExclusive(t *testing.T) {
	for _, text := range []string{"", "/start", "/start.x", "abc", "Hi.There", "سلام", "ب", "/help."} {
		m := privateMessage(text)
		if StartHandler.CanHandle(m) && PassthroughHandler.CanHandle(m) {
			t.Errorf("both message handlers accept %q", text)
		}
	}
}

func TestInlinePredicatesPartition(t *testing.T) {
	for _, query := range []string{"", " ", "\n", "x", " x ", "سلام"} {
		q := &telegram.InlineQuery{Query: query}
		a, b := TransformInlineHandler.CanHandle(q), DefaultInlineHandler.CanHandle(q)
		if a == b {
			t.Errorf("query %q: transform=%v default=%v, want exactly one", query, a, b)
		}
	}
}
