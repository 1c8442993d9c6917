// Package gateway implements messenger.Messenger over a WebSocket
// connection to a chat gateway speaking a small JSON frame protocol.
//
// Outbound operations (send, reply, edit) are correlated with gateway
// acknowledgements through per-request nonces. Inbound interaction
// frames are routed through an embedded messenger.Dispatcher, one at a
// time from the read loop, so interaction events for a session are
// naturally serialized.
//
//	c, err := gateway.Dial(ctx, gateway.Config{
//	    URL:   "wss://gateway.example/bot",
//	    Token: token,
//	})
//	defer c.Close()
//
//	p := pager.FromString(c, text)
//	p.Send(ctx, trigger)
package gateway
