// Package bot routes inbound Telegram events to handlers.
//
// Each event category (messages, inline queries, callback queries) has an
// ordered handler list. The first handler whose CanHandle accepts an event
// owns it: if the handler is not Public and the sender is not allowed, the
// event is dropped without trying later handlers. Handler errors, including
// recovered panics, are returned to the caller, which decides how to report
// them.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexYaroshenko/dotless/internal/telegram"
)

// Platform is the outbound side handlers talk to. *telegram.Client
// satisfies it.
type Platform interface {
	SendMessage(ctx context.Context, chatID int64, text string, opts ...telegram.MessageOption) error
	AnswerInlineQuery(ctx context.Context, queryID string, results []telegram.InlineQueryResult) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string) error
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, opts ...telegram.MessageOption) error
}

// Event is anything with an optional sender.
type Event interface {
	Sender() *telegram.User
}

// Handler is a predicate and an action over one event category.
type Handler[E Event] struct {
	Name      string
	CanHandle func(E) bool
	Handle    func(ctx context.Context, e E, p Platform) error
	// Public handlers run for any sender. The zero value requires the
	// sender to be in the allowed set.
	Public bool
}

// Outcome describes what a dispatch did.
type Outcome int

const (
	// NoMatch means no handler accepted the event.
	NoMatch Outcome = iota
	// Denied means a handler matched but the sender was not allowed.
	Denied
	// Handled means the matching handler ran (successfully or not).
	Handled
)

func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no_match"
	case Denied:
		return "denied"
	case Handled:
		return "handled"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// ErrPanic wraps the value recovered from a panicking handler.
var ErrPanic = errors.New("handler panicked")

// Result reports the handler that matched, if any, and the outcome.
type Result struct {
	Handler string
	Outcome Outcome
}

type handlerList[E Event] []Handler[E]

func (l handlerList[E]) dispatch(ctx context.Context, e E, p Platform, allowed AllowedIDs) (Result, error) {
	for _, h := range l {
		if !h.CanHandle(e) {
			continue
		}
		res := Result{Handler: h.Name, Outcome: Denied}
		if !h.Public {
			sender := e.Sender()
			if sender == nil || !allowed.Contains(sender.ID) {
				return res, nil
			}
		}
		res.Outcome = Handled
		if err := h.run(ctx, e, p); err != nil {
			return res, fmt.Errorf("handler %q: %w", h.Name, err)
		}
		return res, nil
	}
	return Result{Outcome: NoMatch}, nil
}

// run calls Handle, reporting a panic as an error.
func (h Handler[E]) run(ctx context.Context, e E, p Platform) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()
	return h.Handle(ctx, e, p)
}

// Registry holds the ordered handler lists. Register everything before the
// first dispatch; after that it is safe to share read-only.
type Registry struct {
	messages  handlerList[*telegram.Message]
	inline    handlerList[*telegram.InlineQuery]
	callbacks handlerList[*telegram.CallbackQuery]
}

// NewRegistry returns a registry with no handlers. Every dispatch on it
// reports NoMatch.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterMessage appends h to the message handlers. Handlers are tried in
// registration order.
func (r *Registry) RegisterMessage(h Handler[*telegram.Message]) {
	r.messages = append(r.messages, h)
}

// RegisterInline appends h to the inline query handlers.
func (r *Registry) RegisterInline(h Handler[*telegram.InlineQuery]) {
	r.inline = append(r.inline, h)
}

// RegisterCallback appends h to the callback query handlers.
func (r *Registry) RegisterCallback(h Handler[*telegram.CallbackQuery]) {
	r.callbacks = append(r.callbacks, h)
}

// DispatchMessage runs the first message handler that accepts m.
func (r *Registry) DispatchMessage(ctx context.Context, m *telegram.Message, p Platform, allowed AllowedIDs) (Result, error) {
	return r.messages.dispatch(ctx, m, p, allowed)
}

// DispatchInline runs the first inline query handler that accepts q.
func (r *Registry) DispatchInline(ctx context.Context, q *telegram.InlineQuery, p Platform, allowed AllowedIDs) (Result, error) {
	return r.inline.dispatch(ctx, q, p, allowed)
}

// DispatchCallback runs the first callback query handler that accepts q.
func (r *Registry) DispatchCallback(ctx context.Context, q *telegram.CallbackQuery, p Platform, allowed AllowedIDs) (Result, error) {
	return r.callbacks.dispatch(ctx, q, p, allowed)
}

// Names lists registered handler names per category, in dispatch order.
func (r *Registry) Names() map[string][]string {
	return map[string][]string{
		telegram.KindMessage:       names(r.messages),
		telegram.KindInlineQuery:   names(r.inline),
		telegram.KindCallbackQuery: names(r.callbacks),
	}
}

func names[E Event](l handlerList[E]) []string {
	out := make([]string, 0, len(l))
	for _, h := range l {
		out = append(out, h.Name)
	}
	return out
}
