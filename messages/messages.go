// Package messages implements middleware that sorts inbound message stanzas
// into semantic categories and dispatches each stanza to the subscribers
// registered for its category. A stanza resolves to exactly one category:
// chat state notification markers are checked first, then the stanza's type
// attribute. Classification is stateless; each stanza is judged on its own
// fields.
package messages

import (
	"errors"
	"io"
	"log"

	"github.com/Tylian/junction/element"
	"github.com/Tylian/junction/element/stanza"
)

// ErrNilSetup is the error returned from New when no setup function is
// supplied.
var ErrNilSetup = errors.New("setup function cannot be nil")

// ErrEmptyCategory is the error set on a Mux when On is called with an empty
// category.
var ErrEmptyCategory = errors.New("category cannot be empty")

// ErrNilSubscriber is the error set on a Mux when On is called with nil as
// the parameter for Subscriber.
var ErrNilSubscriber = errors.New("Subscriber cannot be nil")

// Trace is the trace logger for the messages package. Outputs useful
// tracing information.
var Trace *log.Logger = log.New(io.Discard, "[TRACE] [messages] ", log.LstdFlags|log.Lshortfile)

// Debug is the debug logger for the messages package. Outputs useful
// debugging information.
var Debug *log.Logger = log.New(io.Discard, "[DEBUG] [messages] ", log.LstdFlags|log.Lshortfile)

// Category is the resolved classification of a message stanza. The well known
// categories are enumerated below, but the set is open: a type attribute
// value this package does not recognize becomes a Category of that literal
// value, so extension-defined types can be subscribed to as well.
type Category string

const (
	Chat      Category = "chat"
	GroupChat Category = "groupchat"
	Normal    Category = "normal"
	Headline  Category = "headline"
	Composing Category = "composing"
	Paused    Category = "paused"

	// Err is the category for stanzas whose type attribute is "error". The
	// category is deliberately not named after the wire value: categories
	// named "error" collide with the fatal default handlers some event
	// emitter hosts attach to that name, and an unhandled error stanza must
	// stay a droppable notification rather than a crash.
	Err Category = "err"
)

// Classify resolves the category for a message element. The checks run in
// precedence order and the first match wins: a "composing" chat state marker,
// a "paused" chat state marker, a missing or empty type attribute, the
// "error" type, and finally the literal value of the type attribute.
func Classify(el element.Element) Category {
	for _, child := range el.ChildElements() {
		if child.Tag == "composing" {
			return Composing
		}
	}
	for _, child := range el.ChildElements() {
		if child.Tag == "paused" {
			return Paused
		}
	}
	sType := el.SelectAttrValue("type", "")
	if sType == "" {
		return Normal
	}
	if sType == "error" {
		return Err
	}
	return Category(sType)
}

// Subscriber is implemented by types that want message stanzas of a
// particular category. Subscribers are invoked synchronously and in
// registration order; a subscriber that needs to block should hand the
// stanza off to its own goroutine.
type Subscriber interface {
	HandleMessage(m stanza.Message)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(m stanza.Message)

// HandleMessage calls f(m).
func (f SubscriberFunc) HandleMessage(m stanza.Message) {
	f(m)
}

// Mux maps categories to ordered lists of subscribers. A Mux is only
// mutable inside the setup function passed to New; the handler New returns
// holds a frozen copy, so dispatch never observes a registration.
type Mux struct {
	subs map[Category][]Subscriber
	err  error
}

// On registers the Subscriber for the given category. Any number of
// subscribers may be registered for the same category; they are dispatched in
// the order they were registered.
//
// This method is meant to be chained. If an error occurs all following calls
// to On are skipped. The error can be retrieved from New.
//
// 		messages.New(func(m *messages.Mux) {
//			m.On(messages.Chat, h).
//				On(messages.GroupChat, h).
//				On(messages.Err, errHandler)
//		})
//
func (m *Mux) On(cat Category, s Subscriber) *Mux {
	if m.err != nil {
		return m
	}
	if cat == "" {
		m.err = ErrEmptyCategory
		return m
	}
	if s == nil {
		m.err = ErrNilSubscriber
		return m
	}
	if m.subs == nil {
		m.subs = make(map[Category][]Subscriber)
	}
	m.subs[cat] = append(m.subs[cat], s)
	return m
}

// Err returns an error set on the Mux. This method is usually called after a
// call to a chain of On().
func (m *Mux) Err() error {
	return m.err
}

// invoke runs a single subscriber. A panicking subscriber must not keep its
// siblings from running, so each invocation is recovered separately.
func invoke(s Subscriber, cat Category, msg stanza.Message) {
	defer func() {
		if r := recover(); r != nil {
			Debug.Printf("Subscriber for category %q panicked: %v", cat, r)
		}
	}()
	s.HandleMessage(msg)
}

// Handler is the message classification middleware. It implements
// stream.StanzaHandler and ignores every element that is not a message
// stanza.
type Handler struct {
	subs map[Category][]Subscriber
}

// New creates a message classification handler. The setup function is called
// exactly once, before New returns, with the Mux the handler will dispatch
// against. Registration is only possible during setup; the handler holds a
// snapshot of the Mux, so later calls to On cannot reach a running handler.
func New(setup func(*Mux)) (Handler, error) {
	if setup == nil {
		return Handler{}, ErrNilSetup
	}
	mux := &Mux{subs: make(map[Category][]Subscriber)}
	setup(mux)
	if mux.err != nil {
		return Handler{}, mux.err
	}
	subs := make(map[Category][]Subscriber, len(mux.subs))
	for cat, list := range mux.subs {
		subs[cat] = append([]Subscriber(nil), list...)
	}
	return Handler{subs: subs}, nil
}

// HandleStanza classifies the element and dispatches it to the subscribers
// for the resolved category. Elements that are not message stanzas pass
// through untouched. next is always called exactly once, after dispatch has
// finished.
func (h Handler) HandleStanza(el element.Element, next func()) {
	defer next()
	msg, err := stanza.TransformMessage(el)
	if err != nil {
		return
	}
	cat := Classify(el)
	Trace.Printf("Classified message as %q", cat)
	subs := h.subs[cat]
	if len(subs) == 0 {
		Trace.Printf("No subscribers for category %q. Dropping stanza.", cat)
		return
	}
	for _, s := range subs {
		invoke(s, cat, msg)
	}
}
