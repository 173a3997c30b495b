package stream

import (
	"encoding/xml"
	"errors"
	"io"
	"log"
	"net"

	"github.com/Tylian/junction/element"
	"github.com/Tylian/junction/element/stanza"
)

// ErrRequireRestart is the error returned when the underlying transport
// has been upgraded and the stream needs to be restarted.
var ErrRequireRestart = errors.New("Transport upgrade. Restart stream.")

// ErrStreamClosed is the error returned when the stream has been closed.
var ErrStreamClosed = errors.New("Stream Closed")

// Trace is the trace logger for the stream package. Outputs useful
// tracing information.
var Trace *log.Logger = log.New(io.Discard, "[TRACE] [stream] ", log.LstdFlags|log.Lshortfile)

// Debug is the debug logger for the stream package. Outputs useful
// debugging information.
var Debug *log.Logger = log.New(io.Discard, "[DEBUG] [stream] ", log.LstdFlags|log.Lshortfile)

type Status int

const (
	Closed Status = iota
	Open   Status = 1 << iota
	Restart
	Secure
	Auth
	Bind
)

type Properties struct {
	Header
	Status
}

func NewProperties() Properties {
	return Properties{Status: Open}
}

// Transport is the underlying connection a stream runs over. Implementations
// are supplied by the application; this package only consumes the interface.
type Transport interface {
	io.Closer

	WriteElement(el element.Element) error
	WriteStanza(st stanza.Stanza) error
	Next() (el element.Element, err error)
	Start(Properties) (Properties, error)
}

type UpgradeableTransport interface {
	Transport

	// Upgrade upgrades the underlying transport. Returns true if the transport
	// was upgraded to TLS.
	Upgrade() (Transport, bool)
}

// Stream reads elements from a transport and runs each one through its
// middleware chain.
type Stream struct {
	Properties

	t     Transport
	chain Chain

	strict bool
}

// New creates a new stream using the underlying transport. The properties
// make up the initial set of properties for the stream.
//
// Strict indicates how strict to RFC-6120 the stream operates. For example, if
// strict is set to true then a stream error will force a close of the stream.
func New(t Transport, p Properties, strict bool) Stream {
	return Stream{t: t, Properties: p, strict: strict}
}

// AddStanzaHandlers appends the given handlers to the end of the middleware
// chain for the stream.
func (s Stream) AddStanzaHandlers(hdlrs ...StanzaHandler) Stream {
	for _, h := range hdlrs {
		s.chain = s.chain.Use(h)
	}
	return s
}

// Err returns an error set on the stream's middleware chain. This method is
// usually called after a chain of AddStanzaHandlers calls.
func (s Stream) Err() error {
	return s.chain.Err()
}

// TODO: How should errors from running the stream be handled?
func (s Stream) Run() {
	// Start the stream
	Trace.Println("Running stream.")
	var err error

	Trace.Println("Starting stream.")
	s.Properties, err = s.t.Start(s.Properties)
	if err != nil {
		Debug.Printf("Error while starting stream: %s", err)
	}

	// Start receiving elements
	for {
		el, err := s.t.Next()
		if err != nil {
			Trace.Printf("Error received: %s", err)
			if err == ErrRequireRestart {
				s.Properties.Status = s.Properties.Status | Restart
				Trace.Println("Restart setup")
			}
			if _, ok := err.(*xml.SyntaxError); ok {
				Debug.Println("XML Syntax Error", err)
				err = s.t.WriteElement(element.StreamErrBadFormat)
				if s.strict {
					s.t.Close()
					break
				}
			}
			if _, ok := err.(net.Error); ok || err == io.EOF {
				Debug.Printf("Network error. Stopping. err: %s", err)
				break
			}
			if err == ErrStreamClosed {
				Trace.Println("Stream close received. Closing stream.")
				s.t.Close()
				break
			}
		}

		if err == nil {
			Trace.Printf("Running middleware chain for <%s:%s>", el.Space, el.Tag)
			s.chain.HandleElement(el)
		}

		// Restart stream as necessary
		if s.Properties.Status&Restart != 0 {
			Trace.Println("Restarting stream.")
			s.Properties, err = s.t.Start(s.Properties)
			if err != nil {
				Debug.Printf("Error while restarting stream: %s", err)
			}
			// If the restart bit is still on
			// TODO: Should this always be handled by the transport?
			if s.Properties.Status&Restart != 0 {
				s.Properties.Status = s.Properties.Status ^ Restart
			}
		}
	}
}
