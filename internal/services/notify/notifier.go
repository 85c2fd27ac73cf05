package notify

import (
	"fmt"
	"log/slog"
	"sync"

	"imkit/internal/domain"
)

// Sound names a chat cue.
type Sound string

const (
	SoundSend        Sound = "send"         // own message sent
	SoundReceive     Sound = "receive"      // message in the open conversation
	SoundLoudReceive Sound = "loud_receive" // message elsewhere
)

// Player is the host's audio and haptics output.
type Player interface {
	PlaySound(sound Sound)
	Vibrate()
}

// Notifier gates cues on the sound and vibration settings.
type Notifier struct {
	player Player
	store  domain.SettingsStore
	logger *slog.Logger

	mu    sync.RWMutex
	flags domain.Settings
}

var (
	defaultOnce     sync.Once
	defaultNotifier *Notifier
)

// Default returns the process-wide Notifier. It keeps its flags in memory
// and logs cues at debug level.
func Default() *Notifier {
	defaultOnce.Do(func() {
		defaultNotifier = New(logPlayer{logger: slog.Default()}, nil, nil)
	})
	return defaultNotifier
}

// New returns a Notifier playing through player. A nil player only logs
// cues. Flags are loaded from store when one is given; a failed load falls
// back to the defaults.
func New(player Player, store domain.SettingsStore, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	if player == nil {
		player = logPlayer{logger: logger}
	}
	n := &Notifier{
		player: player,
		store:  store,
		logger: logger.With("component", "notify"),
		flags:  domain.DefaultSettings(),
	}
	if store != nil {
		flags, err := store.LoadSettings()
		if err != nil {
			n.logger.Warn("settings unavailable, using defaults", "error", err)
		} else {
			n.flags = flags
		}
	}
	return n
}

// PlaySendSoundIfNeeded plays the send cue when chat sounds are on.
func (n *Notifier) PlaySendSoundIfNeeded() {
	if n.flag(func(s domain.Settings) bool { return s.PlaySoundWhenChatting }) {
		n.player.PlaySound(SoundSend)
	}
}

// PlayReceiveSoundIfNeeded plays the in-conversation receive cue when chat
// sounds are on.
func (n *Notifier) PlayReceiveSoundIfNeeded() {
	if n.flag(func(s domain.Settings) bool { return s.PlaySoundWhenChatting }) {
		n.player.PlaySound(SoundReceive)
	}
}

// PlayLoudReceiveSoundIfNeeded is the cue for messages arriving outside the
// open conversation.
func (n *Notifier) PlayLoudReceiveSoundIfNeeded() {
	if n.flag(func(s domain.Settings) bool { return s.PlaySoundWhenNotChatting }) {
		n.player.PlaySound(SoundLoudReceive)
	}
}

// VibrateIfNeeded vibrates when vibration outside a conversation is on.
func (n *Notifier) VibrateIfNeeded() {
	if n.flag(func(s domain.Settings) bool { return s.VibrateWhenNotChatting }) {
		n.player.Vibrate()
	}
}

// PlaySoundWhenChatting reports whether cues play inside a conversation.
func (n *Notifier) PlaySoundWhenChatting() bool {
	return n.flag(func(s domain.Settings) bool { return s.PlaySoundWhenChatting })
}

// PlaySoundWhenNotChatting reports whether cues play outside a conversation.
func (n *Notifier) PlaySoundWhenNotChatting() bool {
	return n.flag(func(s domain.Settings) bool { return s.PlaySoundWhenNotChatting })
}

// VibrateWhenNotChatting reports whether vibration outside a conversation is on.
func (n *Notifier) VibrateWhenNotChatting() bool {
	return n.flag(func(s domain.Settings) bool { return s.VibrateWhenNotChatting })
}

// SetPlaySoundWhenChatting changes and persists the in-conversation sound flag.
func (n *Notifier) SetPlaySoundWhenChatting(on bool) error {
	return n.update(func(s *domain.Settings) { s.PlaySoundWhenChatting = on })
}

// SetPlaySoundWhenNotChatting changes and persists the out-of-conversation
// sound flag.
func (n *Notifier) SetPlaySoundWhenNotChatting(on bool) error {
	return n.update(func(s *domain.Settings) { s.PlaySoundWhenNotChatting = on })
}

// SetVibrateWhenNotChatting changes and persists the vibration flag.
func (n *Notifier) SetVibrateWhenNotChatting(on bool) error {
	return n.update(func(s *domain.Settings) { s.VibrateWhenNotChatting = on })
}

func (n *Notifier) flag(get func(domain.Settings) bool) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return get(n.flags)
}

func (n *Notifier) update(fn func(*domain.Settings)) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.store == nil {
		fn(&n.flags)
		return nil
	}
	next, err := n.store.UpdateSettings(fn)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	n.flags = next
	return nil
}

type logPlayer struct {
	logger *slog.Logger
}

func (p logPlayer) PlaySound(sound Sound) { p.logger.Debug("play sound", "sound", string(sound)) }
func (p logPlayer) Vibrate()              { p.logger.Debug("vibrate") }
