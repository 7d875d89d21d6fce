package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
)

// Client is the surface of the chat platform this service depends on. The
// production implementation wraps a discordgo session; tests replace it with
// testutil.MockDiscordClient.
type Client interface {
	SendMessage(ctx context.Context, channelID, content string) error
	GrantRole(ctx context.Context, communityID, userID, roleID string) error
	HasRole(ctx context.Context, communityID, userID, roleID string) (bool, error)
	InVoice(ctx context.Context, communityID, userID string) (bool, error)
}

type sessionClient struct {
	session *discordgo.Session
}

func NewClient(session *discordgo.Session) *sessionClient {
	return &sessionClient{session: session}
}

func (c *sessionClient) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content)
	return err
}

func (c *sessionClient) GrantRole(ctx context.Context, communityID, userID, roleID string) error {
	return c.session.GuildMemberRoleAdd(communityID, userID, roleID)
}

func (c *sessionClient) HasRole(ctx context.Context, communityID, userID, roleID string) (bool, error) {
	member, err := c.session.State.Member(communityID, userID)
	if err != nil {
		member, err = c.session.GuildMember(communityID, userID)
		if err != nil {
			return false, err
		}
	}

	for _, id := range member.Roles {
		if id == roleID {
			return true, nil
		}
	}

	return false, nil
}

// InVoice answers from the gateway state, which discordgo keeps up to date
// with voice state events. It is the authoritative check the voice collector
// runs before crediting a tick.
func (c *sessionClient) InVoice(ctx context.Context, communityID, userID string) (bool, error) {
	state, err := c.session.State.VoiceState(communityID, userID)
	if err != nil {
		if errors.Is(err, discordgo.ErrStateNotFound) {
			return false, nil
		}

		return false, err
	}

	return state != nil && state.ChannelID != "", nil
}
