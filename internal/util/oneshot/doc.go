// Package oneshot bridges single-shot host callbacks to blocking calls.
//
// A Slot accepts the first Resolve and hands it to Wait. Later resolutions
// are rejected and reported through Hooks, so callers can log host contract
// violations without letting them override a delivered result.
package oneshot
