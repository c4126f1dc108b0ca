// Package remote exposes a running session over the network.
//
// A Server mounts the following routes on a chi router:
//
//	GET  /ws       websocket; one JSON Request in, one JSON Reply out
//	POST /events   the same Request/Reply pair over plain HTTP
//	GET  /tree     the tree in describe format
//	GET  /view     the tree rendered as an interactive HTML page
//	GET  /metrics  Prometheus exposition
//	GET  /healthz  liveness
//
// Requests name a node by id and an event by name:
//
//	{"node":"node-3","event":"Click"}
//
// Replies echo both and report the bubbling outcome:
//
//	{"node":"node-3","event":"Click","visited":2,
//	 "fired":[{"node":"node-3","method":"OnGo"}]}
//
// Browser requests must come from the server's own origin or one listed in
// Config.AllowedOrigins, and POST /events only accepts application/json.
// Clients that send no Origin header, such as Client, are not restricted.
//
// A dispatch to an unknown node sets "error" and, over HTTP, answers 404.
// Handler failures never fail the request; they are listed per firing.
//
// Running servers can announce themselves over mDNS as ServiceType so that
// Scan (and the fire command) can find them without an address.
package remote
