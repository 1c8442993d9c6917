// Package webhook serves paginator interactions over plain HTTP for
// chat platforms that deliver component events as webhooks instead of a
// persistent gateway connection.
//
// The server exposes POST /interactions. Each request carries one
// interaction; the handler's response (defer, ephemeral, or an edit of
// the originating message) is returned synchronously as the HTTP
// response body.
//
//	srv := webhook.NewServer(webhook.Config{Token: token})
//	p := pager.FromString(m, text) // m is the outbound messenger
//	http.ListenAndServe(":8080", srv)
package webhook
