// Package tracker implements the reconciliation of tracked tournament
// players against the osu! ranking API.
//
// # Passes
//
// One pass loads every row of the users table and, per user, fetches the
// current upstream statistics through the rate-limited osu client. A found
// user gets a single update: fresh global rank, recomputed badge-weighted
// (bws) rank, and current username. A vanished user (error payload
// upstream) goes to the ModerationSink instead and receives no writes.
//
// # Moderation modes
//
// The sink is chosen at construction from configuration:
//
//   - ban: call the moderation API with the admin row's credential; the row
//     stays, and is_banned is left for the moderation service to reflect.
//   - delete: remove the row; it re-enters tracking only if the
//     registration system recreates it.
//
// # Error policy
//
// Fail-fast by default: the first fetch, store, or sink failure aborts the
// pass, and the next scheduled pass starts over. continue_on_error trades
// that for per-user skip-and-count.
//
// # Surfaces
//
// The Service serializes passes (they never overlap) and feeds the fiber
// handler: pass status, tracked-user listing, and manual triggering. When
// configured, each pass summary is archived to object storage with a
// retention cap.
package tracker
