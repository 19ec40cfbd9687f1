package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/diogo/soulguide/internal/errors"
	"github.com/diogo/soulguide/internal/logger"
	"github.com/diogo/soulguide/internal/models"
)

// Send rejections. None of them changes the conversation.
var (
	ErrEmptyInput   = errors.New("nothing to send")
	ErrBusy         = errors.New("a reply is still being generated")
	ErrLimitReached = errors.New("conversation limit reached")
)

// Default fallback copy
const (
	DefaultApology      = "Пробач, зв'язок з полем зараз слабкий. Спробуй ще раз пізніше."
	DefaultGenericError = "Сталася помилка. Будь ласка, спробуйте ще раз."
)

// Responder produces the model reply for one turn
type Responder interface {
	GenerateResponse(ctx context.Context, text, image string, history []models.Message) (models.Reply, error)
}

// ChatError is the failure recorded in the generation state
type ChatError struct {
	Message string
	Cause   error
}

func (e *ChatError) Error() string {
	return e.Message
}

// Unwrap returns the responder error
func (e *ChatError) Unwrap() error {
	return e.Cause
}

// Controller runs one send at a time against a Responder and gates the
// conversation after a fixed number of user turns.
type Controller struct {
	store     *Store
	responder Responder

	limit        int
	apology      string
	genericError string
	onChange     func()
	now          func() time.Time

	mu       sync.Mutex
	inFlight bool
	state    models.GenerationState
}

// Option configures a Controller
type Option func(*Controller)

// WithTurnLimit sets how many user messages are allowed
func WithTurnLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithApology sets the message appended to the chat when a reply fails
func WithApology(text string) Option {
	return func(c *Controller) {
		if text != "" {
			c.apology = text
		}
	}
}

// WithGenericError sets the state error used when the failure has no message
func WithGenericError(text string) Option {
	return func(c *Controller) {
		if text != "" {
			c.genericError = text
		}
	}
}

// WithOnChange registers fn to run after every state or store change.
// fn is called without locks held.
func WithOnChange(fn func()) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithClock replaces time.Now for message timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates a controller. A non-empty greeting is stored as the
// first model message and becomes part of the history.
func NewController(responder Responder, greeting string, opts ...Option) *Controller {
	c := &Controller{
		responder:    responder,
		limit:        models.TurnLimit,
		apology:      DefaultApology,
		genericError: DefaultGenericError,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.store = NewStore()
	if greeting != "" {
		c.store.Append(c.newMessage(models.SenderModel, greeting, ""))
	}
	return c
}

// Send submits one user turn. It returns the model message that was appended
// (the apology when the responder failed) and the responder error, if any.
// Whitespace only decides whether there is anything to send; the text is
// stored and sent as typed.
func (c *Controller) Send(ctx context.Context, text, image string) (models.Message, error) {
	if strings.TrimSpace(text) == "" && image == "" {
		return models.Message{}, ErrEmptyInput
	}

	c.mu.Lock()
	if c.store.UserCount() >= c.limit {
		c.mu.Unlock()
		return models.Message{}, ErrLimitReached
	}
	if c.inFlight {
		c.mu.Unlock()
		return models.Message{}, ErrBusy
	}
	c.inFlight = true

	history := c.store.Messages()
	c.store.Append(c.newMessage(models.SenderUser, text, image))
	c.state = models.GenerationState{IsLoading: true}
	c.mu.Unlock()
	c.notify()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("responder panicked", "panic", r)
			c.fail(fmt.Errorf("responder panicked: %v", r), c.genericError)
			c.settle()
			panic(r)
		}
		c.settle()
	}()

	reply, err := c.responder.GenerateResponse(ctx, text, image, history)
	if err != nil {
		logger.Warn("reply failed", "error", err)
		return c.fail(err, apierrors.UserMessage(err, c.genericError)), err
	}

	msg := c.newMessage(models.SenderModel, reply.Text, reply.Image)
	c.store.Append(msg)
	return msg, nil
}

// fail appends the apology and records the error shown to the user
func (c *Controller) fail(err error, message string) models.Message {
	msg := c.newMessage(models.SenderModel, c.apology, "")

	c.mu.Lock()
	c.state.Err = &ChatError{Message: message, Cause: err}
	c.store.Append(msg)
	c.mu.Unlock()
	return msg
}

// settle releases the in-flight slot and clears loading
func (c *Controller) settle() {
	c.mu.Lock()
	c.inFlight = false
	c.state.IsLoading = false
	c.mu.Unlock()
	c.notify()
}

// Messages returns a snapshot of the conversation
func (c *Controller) Messages() []models.Message {
	return c.store.Messages()
}

// LastReply returns the most recent model message
func (c *Controller) LastReply() (models.Message, bool) {
	msgs := c.store.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if !msgs[i].IsUser() {
			return msgs[i], true
		}
	}
	return models.Message{}, false
}

// State returns a snapshot of the generation state
func (c *Controller) State() models.GenerationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsLoading reports whether a reply is being generated
func (c *Controller) IsLoading() bool {
	return c.State().IsLoading
}

// UserTurns returns the number of user messages sent so far
func (c *Controller) UserTurns() int {
	return c.store.UserCount()
}

// Limit returns the configured turn limit
func (c *Controller) Limit() int {
	return c.limit
}

// Remaining returns how many user turns are left
func (c *Controller) Remaining() int {
	return max(c.limit-c.UserTurns(), 0)
}

// LimitReached reports whether no more user turns are accepted
func (c *Controller) LimitReached() bool {
	return c.UserTurns() >= c.limit
}

// ShowInput reports whether the input should be offered
func (c *Controller) ShowInput() bool {
	return !c.LimitReached()
}

// ShowCTA reports whether the call-to-action replaces the input. It stays
// hidden while the final reply is loading.
func (c *Controller) ShowCTA() bool {
	return c.LimitReached() && !c.IsLoading()
}

func (c *Controller) newMessage(sender models.Sender, text, image string) models.Message {
	return models.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Image:     image,
		Timestamp: c.now(),
	}
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
