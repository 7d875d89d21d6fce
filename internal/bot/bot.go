// Package bot binds gateway events to the collectors. It owns no XP logic:
// messages and voice transitions are normalized here and handed down.
package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/tr10-lab/backend/internal/domain"
	"github.com/tr10-lab/backend/internal/domain/collector"
	"github.com/tr10-lab/backend/pkg/xcontext"
)

type Bot struct {
	// ctx carries the process-wide dependencies into gateway handlers, which
	// discordgo calls without a context of their own.
	ctx context.Context

	session         *discordgo.Session
	textCollector   *collector.TextCollector
	voiceCollector  *collector.VoiceCollector
	communityDomain domain.CommunityDomain
}

func New(
	ctx context.Context,
	session *discordgo.Session,
	textCollector *collector.TextCollector,
	voiceCollector *collector.VoiceCollector,
	communityDomain domain.CommunityDomain,
) *Bot {
	return &Bot{
		ctx:             ctx,
		session:         session,
		textCollector:   textCollector,
		voiceCollector:  voiceCollector,
		communityDomain: communityDomain,
	}
}

// Start registers the handlers, opens the gateway connection, and launches the
// voice ticker. It returns once connected; Stop closes the connection.
func (b *Bot) Start() error {
	b.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentMessageContent

	b.session.AddHandler(b.onGuildCreate)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onVoiceStateUpdate)

	if err := b.session.Open(); err != nil {
		return err
	}

	go b.voiceCollector.Run(b.ctx)
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

// onGuildCreate seeds the presence set from the guild snapshot, so members
// already sitting in voice when the gateway (re)connects are not lost until
// their next transition.
func (b *Bot) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	seeded := 0
	for _, vs := range g.VoiceStates {
		if vs.ChannelID == "" {
			continue
		}

		b.voiceCollector.HandlePresenceChange(b.ctx, g.ID, vs.UserID, true)
		seeded++
	}

	xcontext.Logger(b.ctx).Infof("Joined guild %s, seeded %d voice members", g.ID, seeded)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Direct messages carry no guild and never earn XP.
	if m.GuildID == "" || m.Author == nil {
		return
	}

	isService := m.Author.Bot || m.Author.System

	if !isService {
		reply, err := b.communityDomain.LookupAutoReply(b.ctx, m.GuildID, m.Content)
		if err != nil {
			xcontext.Logger(b.ctx).Warnf("Cannot look up auto reply: %v", err)
		} else if reply != "" {
			if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
				xcontext.Logger(b.ctx).Warnf("Cannot send auto reply: %v", err)
			}
		}
	}

	err := b.textCollector.HandleMessage(b.ctx, m.GuildID, m.Author.ID, isService)
	if err != nil {
		xcontext.Logger(b.ctx).Errorf("Cannot handle message of %s: %v", m.Author.ID, err)
	}
}

func (b *Bot) onVoiceStateUpdate(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.Member != nil && v.Member.User != nil && v.Member.User.Bot {
		return
	}

	connected := v.ChannelID != ""
	b.voiceCollector.HandlePresenceChange(b.ctx, v.GuildID, v.UserID, connected)
}
