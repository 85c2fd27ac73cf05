package domain

import (
	interfaces "imkit/internal/domain/interfaces"
	types "imkit/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ClientID                  = types.ClientID
	ConversationID            = types.ConversationID
	SessionState              = types.SessionState
	ActionKind                = types.ActionKind
	ActionDescriptor          = types.ActionDescriptor
	Signature                 = types.Signature
	SignatureResult           = types.SignatureResult
	Profile                   = types.Profile
	CreateConversationRequest = types.CreateConversationRequest
	Conversation              = types.Conversation
	Settings                  = types.Settings
	AuthError                 = types.AuthError
)

// Interface and callback aliases expose contracts from the interfaces subpackage.
type (
	SessionService        = interfaces.SessionService
	UserSystemService     = interfaces.UserSystemService
	SignatureService      = interfaces.SignatureService
	ConversationService   = interfaces.ConversationService
	UIService             = interfaces.UIService
	SettingService        = interfaces.SettingService
	IMClient              = interfaces.IMClient
	SigningKeyStore       = interfaces.SigningKeyStore
	SettingsStore         = interfaces.SettingsStore
	FetchProfilesFunc     = interfaces.FetchProfilesFunc
	FetchProfilesCallback = interfaces.FetchProfilesCallback
	GenerateSignatureFunc = interfaces.GenerateSignatureFunc
	SignatureCallback     = interfaces.SignatureCallback
	OpenProfileFunc       = interfaces.OpenProfileFunc
)

// Re-exported constants and constructors.
const (
	SessionClosed = types.SessionClosed
	SessionOpen   = types.SessionOpen

	ActionOpen   = types.ActionOpen
	ActionStart  = types.ActionStart
	ActionAdd    = types.ActionAdd
	ActionRemove = types.ActionRemove
)

var (
	NewActionDescriptor = types.NewActionDescriptor
	ParseActionKind     = types.ParseActionKind
	DefaultSettings     = types.DefaultSettings

	ErrorCode           = types.ErrorCode
	IsDenied            = types.IsDenied
	IsInvalidDescriptor = types.IsInvalidDescriptor
)
