// Package directory resolves peer profiles through the host's user system.
//
// Without a registered fetch function every lookup returns an empty map.
// Callers treat a missing entry as "profile unavailable", never as fatal.
package directory
