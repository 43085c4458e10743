// Package http exposes the conference and meeting use cases as a JSON API.
//
// Callers authenticate with an "Authorization: Bearer" token. A request
// without a valid token is served anonymously: reads still work and
// mutations fail with the unauthenticated error. Times travel as Unix epoch
// milliseconds.
package http
