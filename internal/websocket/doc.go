// Package websocket carries protocol frames over a WebSocket connection.
//
// Conn implements the transport consumed by protocol.Controller: every text
// message is one JSON frame. The host side dials with Dial; the application
// side accepts hosts with Server, which upgrades each HTTP request and hands
// the connection to a SessionFunc for its whole lifetime.
package websocket
