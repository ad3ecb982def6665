package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DMSender is the part of *discordgo.Session used to send direct messages
type DMSender interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSink sends notifications as Discord direct messages. The gardener's
// user id is their Discord user id.
type DiscordSink struct {
	session  DMSender
	channels *expirable.LRU[string, string]
}

// NewDiscordSink creates a sink over session. DM channel ids are cached for ttl.
func NewDiscordSink(session DMSender, size int, ttl time.Duration) *DiscordSink {
	if size <= 0 {
		size = DefaultChannelCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultChannelCacheTTL
	}
	return &DiscordSink{
		session:  session,
		channels: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// Notify implements Sink
func (d *DiscordSink) Notify(ctx context.Context, userID, text string) error {
	channelID, err := d.channel(userID)
	if err != nil {
		return err
	}

	if _, err := d.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		// The channel may be stale; look it up again next time.
		d.channels.Remove(userID)
		return fmt.Errorf("%s to %s: %w", ErrMsgSendDM, userID, err)
	}
	return nil
}

func (d *DiscordSink) channel(userID string) (string, error) {
	if id, ok := d.channels.Get(userID); ok {
		return id, nil
	}

	ch, err := d.session.UserChannelCreate(userID)
	if err != nil {
		return "", fmt.Errorf("%s for %s: %w", ErrMsgOpenDM, userID, err)
	}
	d.channels.Add(userID, ch.ID)
	return ch.ID, nil
}

// OpenDiscord creates and opens a bot session for token
func OpenDiscord(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateSession, err)
	}
	s.Identify.Intents = discordgo.IntentsDirectMessages

	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenSession, err)
	}
	slog.Info(LogMsgDiscordConnected)
	return s, nil
}

// CloseDiscord closes a session opened with OpenDiscord
func CloseDiscord(s *discordgo.Session) {
	if err := s.Close(); err != nil {
		slog.Warn("Failed to close discord session", "error", err)
		return
	}
	slog.Info(LogMsgDiscordClosed)
}
