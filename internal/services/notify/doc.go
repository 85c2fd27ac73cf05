// Package notify plays chat sound and vibration cues when the user's
// settings allow them.
//
// Playback itself belongs to the host and is reached through Player. Default
// returns a process-wide Notifier that only logs its cues; hosts that own a
// speaker build their own with New.
package notify
