package types

// Profile is a host-resolved peer identity.
type Profile struct {
	UserID     ClientID          `json:"user_id" yaml:"user_id"`
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	AvatarURL  string            `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}
