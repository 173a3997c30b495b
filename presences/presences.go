// Package presences implements middleware that sorts inbound presence
// stanzas into semantic categories and dispatches each stanza to the
// subscribers registered for its category. It is the presence counterpart of
// the messages package: classification is stateless and the category set is
// open. This package does not track contact availability; it only routes the
// notifications.
package presences

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

// Trace is the trace logger for the presences package. Outputs useful
// tracing information.
var Trace *log.Logger = log.New(io.Discard, "[TRACE] [presences] ", log.LstdFlags|log.Lshortfile)

// Debug is the debug logger for the presences package. Outputs useful
// debugging information.
var Debug *log.Logger = log.New(io.Discard, "[DEBUG] [presences] ", log.LstdFlags|log.Lshortfile)

// Category is the resolved classification of a presence stanza. A type
// attribute value this package does not recognize becomes a Category of that
// literal value.
type Category string

const (
	Available    Category = "available"
	Unavailable  Category = "unavailable"
	Subscribe    Category = "subscribe"
	Subscribed   Category = "subscribed"
	Unsubscribe  Category = "unsubscribe"
	Unsubscribed Category = "unsubscribed"
	Probe        Category = "probe"

	// Err is the category for stanzas whose type attribute is "error". See
	// messages.Err for why the category is not named after the wire value.
	Err Category = "err"
)

// Classify resolves the category for a presence element. A presence with no
// type attribute signals availability, so a missing or empty attribute
// classifies as Available; the "error" type maps to Err; anything else
// becomes the literal value of the attribute.
func Classify(el element.Element) Category {
	sType := el.SelectAttrValue("type", "")
	if sType == "" {
		return Available
	}
	if sType == "error" {
		return Err
	}
	return Category(sType)
}

// Subscriber is implemented by types that want presence stanzas of a
// particular category. Subscribers are invoked synchronously and in
// registration order.
type Subscriber interface {
	HandlePresence(p stanza.Presence)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(p stanza.Presence)

// HandlePresence calls f(p).
func (f SubscriberFunc) HandlePresence(p stanza.Presence) {
	f(p)
}

// Mux maps categories to ordered lists of subscribers. A Mux is only mutable
// inside the setup function passed to New.
type Mux struct {
	subs map[Category][]Subscriber
	err  error
}

// On registers the Subscriber for the given category. Subscribers for the
// same category are dispatched in the order they were registered.
//
// This method is meant to be chained. If an error occurs all following calls
// to On are skipped. The error can be retrieved from New.
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

func invoke(s Subscriber, cat Category, p stanza.Presence) {
	defer func() {
		if r := recover(); r != nil {
			Debug.Printf("Subscriber for category %q panicked: %v", cat, r)
		}
	}()
	s.HandlePresence(p)
}

// Handler is the presence classification middleware. It implements
// stream.StanzaHandler and ignores every element that is not a presence
// stanza.
type Handler struct {
	subs map[Category][]Subscriber
}

// New creates a presence classification handler. The setup function is
// called exactly once, before New returns, with the Mux the handler will
// dispatch against. The handler holds a snapshot of the Mux, so later calls
// to On cannot reach a running handler.
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
// for the resolved category. Elements that are not presence stanzas pass
// through untouched. next is always called exactly once.
func (h Handler) HandleStanza(el element.Element, next func()) {
	defer next()
	p, err := stanza.TransformPresence(el)
	if err != nil {
		return
	}
	cat := Classify(el)
	Trace.Printf("Classified presence as %q", cat)
	subs := h.subs[cat]
	if len(subs) == 0 {
		Trace.Printf("No subscribers for category %q. Dropping stanza.", cat)
		return
	}
	for _, s := range subs {
		invoke(s, cat, p)
	}
}
