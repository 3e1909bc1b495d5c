package models

// NotificationChannel configures one kind of notification.
type NotificationChannel struct {
	Enabled      bool   `json:"enabled"`
	SoundEnabled bool   `json:"soundEnabled"`
	SoundURL     string `json:"soundUrl"`
}

// Sound returns the sound to play for the channel, or "" when muted.
func (c NotificationChannel) Sound() string {
	if !c.SoundEnabled {
		return ""
	}
	return c.SoundURL
}

// NotificationSettings holds the per-event channels.
type NotificationSettings struct {
	WinTrade         NotificationChannel `json:"winTrade"`
	LossTrade        NotificationChannel `json:"lossTrade"`
	ObjectiveReached NotificationChannel `json:"objectiveReached"`
	DailyMantra      NotificationChannel `json:"dailyMantra"`
}

// UserProfile holds the owner's display profile.
type UserProfile struct {
	Name        string `json:"name"`
	Photo       string `json:"photo"`
	HeaderImage string `json:"headerImage,omitempty"`
}

// SecuritySettings holds the wallet gate flag.
type SecuritySettings struct {
	BiometricEnabled bool `json:"biometricEnabled"`
}

// Settings is the process-wide configuration record persisted with the data.
type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Profile       UserProfile          `json:"profile"`
	Security      SecuritySettings     `json:"security"`
}

// Default notification sounds.
const (
	SoundWin       = "https://assets.mixkit.co/active_storage/sfx/2013/2013-preview.mp3"
	SoundLoss      = "https://assets.mixkit.co/active_storage/sfx/2018/2018-preview.mp3"
	SoundObjective = "https://assets.mixkit.co/active_storage/sfx/2000/2000-preview.mp3"
	SoundMantra    = "https://assets.mixkit.co/active_storage/sfx/2015/2015-preview.mp3"
)

// DefaultProfileName is used until the owner sets a name.
const DefaultProfileName = "Trader"

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			WinTrade:         NotificationChannel{Enabled: true, SoundEnabled: true, SoundURL: SoundWin},
			LossTrade:        NotificationChannel{Enabled: true, SoundEnabled: true, SoundURL: SoundLoss},
			ObjectiveReached: NotificationChannel{Enabled: true, SoundEnabled: true, SoundURL: SoundObjective},
			DailyMantra:      NotificationChannel{Enabled: true, SoundEnabled: true, SoundURL: SoundMantra},
		},
		Profile: UserProfile{Name: DefaultProfileName},
	}
}
