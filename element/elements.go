package element

import "github.com/Tylian/junction/namespace"

// Chat state notification markers as defined by XEP-0085. A message stanza
// carries at most one of these as a child element.
var ChatState = struct {
	Active    Element
	Composing Element
	Paused    Element
	Inactive  Element
	Gone      Element
}{
	Active:    New("active").AddAttr("xmlns", namespace.ChatStates),
	Composing: New("composing").AddAttr("xmlns", namespace.ChatStates),
	Paused:    New("paused").AddAttr("xmlns", namespace.ChatStates),
	Inactive:  New("inactive").AddAttr("xmlns", namespace.ChatStates),
	Gone:      New("gone").AddAttr("xmlns", namespace.ChatStates),
}

var Body = New("body")

var StreamError = New("stream:error")
var StreamErrBadFormat = StreamError.AddChild(New("bad-format").AddAttr("xmlns", namespace.Stream))
