package types

// Settings are the persisted host preferences.
type Settings struct {
	AllLogsEnabled           bool `json:"all_logs_enabled"`
	UseDevPushCertificate    bool `json:"use_dev_push_certificate"`
	VibrateWhenNotChatting   bool `json:"vibrate_when_not_chatting"`
	PlaySoundWhenNotChatting bool `json:"play_sound_when_not_chatting"`
	PlaySoundWhenChatting    bool `json:"play_sound_when_chatting"`
}

// DefaultSettings returns logs off, production push certificate, and every
// sound and vibration cue on.
func DefaultSettings() Settings {
	return Settings{
		VibrateWhenNotChatting:   true,
		PlaySoundWhenNotChatting: true,
		PlaySoundWhenChatting:    true,
	}
}
