// Package session opens and closes the IM session for the local peer.
//
// Opening is a security-sensitive action: the service builds an open
// descriptor, has it authorized by the signature gateway and only then
// asks the backend to open the client, attaching the signature. Closing is
// always permitted and never consults the gateway.
//
// State machine:
//
//	closed --OpenSession (authorized)--> open --CloseSession--> closed
//
// OpenSession while open and CloseSession while closed are no-op successes.
package session
