package app

import (
	"imkit/internal/domain"
	"imkit/internal/services/notify"
)

// App is the service set a host application talks to.
type App struct {
	Sessions      domain.SessionService
	Users         domain.UserSystemService
	Signatures    domain.SignatureService
	Conversations domain.ConversationService
	UI            domain.UIService
	Settings      domain.SettingService
	Notifier      *notify.Notifier
}
