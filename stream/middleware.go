package stream

import (
	"errors"

	"github.com/Tylian/junction/element"
)

// ErrNilStanzaHandler is the error set on a Chain when Use is called with nil
// as the parameter for StanzaHandler.
var ErrNilStanzaHandler = errors.New("StanzaHandler cannot be nil")

// StanzaHandler is implemented by middleware stages that can process inbound
// stanza elements. A stage must call next exactly once after it has finished
// processing the element, whether processing succeeded or not. Stages are
// advisory: they observe the element and must not assume they can halt the
// stream by withholding next, though the chain does not run later stages for
// a stanza whose stage never calls it.
type StanzaHandler interface {
	HandleStanza(el element.Element, next func())
}

// StanzaHandlerFunc adapts a function to the StanzaHandler interface.
type StanzaHandlerFunc func(el element.Element, next func())

// HandleStanza calls f(el, next).
func (f StanzaHandlerFunc) HandleStanza(el element.Element, next func()) {
	f(el, next)
}

// Chain is an ordered set of stanza middleware stages. Each inbound element is
// handed to the first stage; a stage's next function invokes the stage after
// it. The zero value for a Chain is a valid, empty configuration.
type Chain struct {
	stages []StanzaHandler
	err    error
}

// NewChain returns an initialized Chain.
func NewChain() Chain {
	return Chain{}
}

// Use appends the StanzaHandler to the chain.
//
// This method is meant to be chained. If an error occurs all following calls
// to Use are skipped. The error can be retrieved by calling Err().
//
// 		c := NewChain().
//				Use(...).
//				Use(...).
//				Use(...)
//		if c.Err() != nil {
//			// handle error
//			panic(c.Err())
//		}
//
func (c Chain) Use(h StanzaHandler) Chain {
	if c.err != nil {
		return c
	}
	if h == nil {
		c.err = ErrNilStanzaHandler
		return c
	}
	c.stages = append(c.stages, h)
	return c
}

// Err returns an error set on the Chain. This method is usually called after
// a call to a chain of Use().
func (c Chain) Err() error {
	return c.err
}

// HandleElement starts the element through the chain. It returns once every
// stage that was reached has returned.
func (c Chain) HandleElement(el element.Element) {
	c.call(0, el)
}

func (c Chain) call(i int, el element.Element) {
	if i >= len(c.stages) {
		return
	}
	c.stages[i].HandleStanza(el, func() { c.call(i + 1, el) })
}
