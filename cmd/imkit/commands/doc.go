// Package commands defines the imkit CLI, a scripted host for the kit.
//
// Commands
//
//   - keygen       Create the local signing key
//   - fingerprint  Print the signing key fingerprint and public key
//   - open         Open a session and report the authorization mode
//   - create       Create a conversation
//   - invite       Add members to a conversation
//   - kick         Remove members from a conversation
//   - profiles     Resolve user profiles from the profile directory file
//   - settings     Show or change persisted settings
//   - badge        Push a badge count to the backend
//
// # Implementation
//
// Every backend command opens a session for --client through the session
// facade, performs its action and closes the session again. Actions are
// signed with the local key unless --unsigned is given.
package commands
