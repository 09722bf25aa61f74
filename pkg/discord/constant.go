package discord

import "time"

const (
	defaultBaseURL     = "https://discord.com"
	webhookURLTemplate = "%s/api/webhooks/%s/%s"

	DefaultUsername = "Alert Bot"
	UserAgent       = "Alert-Bot/1.0"
	ReportBugTitle  = "Alert Service Error Report"

	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 3
	DefaultRetryDelay = time.Second
)

// Discord API limits, in characters.
const (
	MaxEmbedLength    = 6000
	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
	MaxFieldValueLen  = 1024
	ReportBugDescLen  = 4096
)

// MessageType picks the embed color.
type MessageType string

const (
	MessageTypeInfo    MessageType = "info"
	MessageTypeSuccess MessageType = "success"
	MessageTypeWarning MessageType = "warning"
	MessageTypeError   MessageType = "error"
)

const (
	ColorInfo    = 0x3498DB
	ColorSuccess = 0x2ECC71
	ColorWarning = 0xFFFF00
	ColorError   = 0xE74C3C
)

var typeColors = map[MessageType]int{
	MessageTypeInfo:    ColorInfo,
	MessageTypeSuccess: ColorSuccess,
	MessageTypeWarning: ColorWarning,
	MessageTypeError:   ColorError,
}

// MessageLevel is the urgency of a message. LevelUrgent pings the channel.
type MessageLevel int

const (
	LevelLow MessageLevel = iota
	LevelNormal
	LevelHigh
	LevelUrgent
)

const urgentMention = "@here"
