// Package ratelimit provides the minimum-interval limiter used by upstream
// API clients.
//
// Unlike a token bucket, the limiter never allows bursts: it enforces a hard
// floor between the start of one dispatch and the start of the next. The
// osu! API client is the only consumer; each client instance owns exactly
// one limiter, so no locking is involved.
//
// # Usage
//
//	l := ratelimit.New(ratelimit.DefaultInterval)
//	if err := l.Wait(ctx); err != nil {
//	    return err
//	}
//	resp, err := httpClient.Do(req)
package ratelimit
