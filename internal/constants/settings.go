package constants

const (
	// General Settings
	SettingTimezone    = "timezone"
	SettingPartnerName = "partner_name"

	// Default Settings Values
	DefaultTimezone    = "Local" // Use system local timezone by default
	DefaultPartnerName = ""
)
