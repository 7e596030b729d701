// Package authsdk holds the wire types of the secure-login HTTP API and a
// small Go client for it. The server handlers and the end-to-end tests both
// build on this package so the two can never drift apart silently.
package authsdk
