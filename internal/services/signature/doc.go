// Package signature is the authorization gateway for security-sensitive IM
// actions.
//
// Every open, start, add and remove action is described by a
// domain.ActionDescriptor and passed to Gateway.Authorize, which hands the
// four canonical fields to the host's signing function and normalizes what
// comes back:
//
//   - invalid descriptor: types.InvalidDescriptor, the host is never called;
//   - no signing function: unsigned mode, the action proceeds without a
//     signature (logged with mode=unsigned);
//   - host error: types.AuthorizationDenied wrapping the host error;
//   - neither or both of signature and error, or a second resolution:
//     types.HostContractViolation, treated as a denial.
//
// # Timeouts
//
// The gateway sets no deadline of its own. A host function that never calls
// back blocks Authorize until ctx is done; callers that need bounded latency
// pass a context with a deadline. The host call itself cannot be aborted, so
// a resolution arriving after the caller gave up is logged and dropped.
//
// The gateway does not retry, cache, deduplicate or serialize calls. Two
// Authorize calls for identical descriptors invoke the host twice.
package signature
