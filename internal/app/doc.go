// Package app contains the core application logic. It wires the loaded
// configuration to the map service, answers one-shot route queries, talks
// to remote servers and runs the HTTP server lifecycle, decoupled from any
// specific entrypoint like a CLI.
package app
