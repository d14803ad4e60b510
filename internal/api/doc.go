// Package api provides HTTP handlers for the API.
//
// Handlers translate between the HTTP surface and the session engine,
// artifact store and prompt store. Error mapping is centralized in
// errors.go so internal error details never leak to clients.
package api
