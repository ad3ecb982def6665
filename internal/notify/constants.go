package notify

import "time"

// Discord DM channel cache
const (
	DefaultChannelCacheSize = 1024
	DefaultChannelCacheTTL  = 6 * time.Hour
)

// Log messages
const (
	LogMsgNotification     = "Gardener notification"
	LogMsgDiscordConnected = "Discord session opened"
	LogMsgDiscordClosed    = "Discord session closed"
)

// Error messages
const (
	ErrMsgCreateSession = "failed to create discord session"
	ErrMsgOpenSession   = "failed to open discord session"
	ErrMsgOpenDM        = "failed to open DM channel"
	ErrMsgSendDM        = "failed to send DM"
)
