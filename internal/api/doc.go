// Package api exposes a mapservice.Service over HTTP for the map renderer
// and the UI command layer, and pushes change notifications over socket.io.
package api
