// Package rtclient is a socket.io client for a running metrograph server.
// It asks the server for routes and follows its map change notifications.
package rtclient
