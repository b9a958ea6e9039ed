// Package handler implements the HTTP endpoints over the core services.
//
// Every JSON response uses the Response envelope. Domain errors map to
// HTTP status codes by the numeric suffix of their code.
package handler
