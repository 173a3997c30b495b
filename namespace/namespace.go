package namespace

const (
	Stream = "http://etherx.jabber.org/streams"
	Stanza = "urn:ietf:params:xml:ns:xmpp-stanzas"
	Client = "jabber:client"
	// XEP-0085 chat state notifications
	ChatStates = "http://jabber.org/protocol/chatstates"
)
