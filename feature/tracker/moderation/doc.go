// Package moderation implements the client for the tournament moderation
// API and the sink mode constants.
//
// The ban endpoint authenticates with a session-cookie style header
// (user_hash) belonging to the single admin row of the users table. Ban
// calls are fire-and-forget; the moderation service owns the is_banned
// flag and this package never inspects or reflects the outcome.
package moderation
