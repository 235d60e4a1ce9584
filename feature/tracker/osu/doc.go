// Package osu implements the rank source: an OAuth-authenticated,
// rate-limited client for the osu! v2 API.
//
// # Classification
//
// The upstream signals a vanished account by returning a JSON object with
// an "error" key. Presence of that key is the sole detection rule; HTTP
// status codes are not consulted. The heuristic is loose on purpose and
// isolated behind this package so a stricter classifier can replace it
// without touching the engine.
//
// # Rate limiting
//
// Each Client owns one ratelimit.Limiter enforcing the dispatch-to-dispatch
// floor against the API, failed requests included.
package osu
