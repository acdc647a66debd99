package duel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"duelbot/bot/common"
	"duelbot/domain/entities"
	"duelbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// interactor implements the DuelInteractor interface over Discord button
// prompts. Each prompt is a channel message that is torn down on every exit
// path, so an abandoned duel leaves no live buttons behind.
type interactor struct {
	session *discordgo.Session
	timeout time.Duration
}

func newInteractor(session *discordgo.Session, timeout time.Duration) interfaces.DuelInteractor {
	return &interactor{
		session: session,
		timeout: timeout,
	}
}

// PromptAccept posts the challenge with Accept/Decline buttons and waits for
// the opponent's answer.
func (in *interactor) PromptAccept(ctx context.Context, session *entities.DuelSession) (interfaces.AcceptResponse, error) {
	msg, err := in.session.ChannelMessageSendComplex(session.ChannelID, &discordgo.MessageSend{
		Content:    challengeMessage(session),
		Components: acceptComponents(),
	})
	if err != nil {
		return interfaces.AcceptResponseTimedOut, fmt.Errorf("failed to post challenge prompt: %w", err)
	}
	defer in.deletePrompt(session.ChannelID, msg.ID)

	waiter := newComponentWaiter(in.session, msg.ID, common.FormatUserID(session.Opponent.DiscordID))
	defer waiter.Close()

	press, ok := waiter.Await(ctx, in.timeout)
	if !ok {
		return interfaces.AcceptResponseTimedOut, nil
	}

	if press.MessageComponentData().CustomID == acceptButtonID {
		return interfaces.AcceptResponseAccepted, nil
	}
	return interfaces.AcceptResponseDeclined, nil
}

// PromptMove posts a move prompt for one participant and waits for their
// button press. The prompt is deleted before returning, so the chosen move is
// never visible to the other player.
func (in *interactor) PromptMove(ctx context.Context, session *entities.DuelSession, player entities.Participant) (entities.Move, bool, error) {
	msg, err := in.session.ChannelMessageSendComplex(session.ChannelID, &discordgo.MessageSend{
		Content:    movePromptMessage(player),
		Components: moveComponents(),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to post move prompt: %w", err)
	}
	defer in.deletePrompt(session.ChannelID, msg.ID)

	waiter := newComponentWaiter(in.session, msg.ID, common.FormatUserID(player.DiscordID))
	defer waiter.Close()

	press, ok := waiter.Await(ctx, in.timeout)
	if !ok {
		return "", false, nil
	}

	token := strings.TrimPrefix(press.MessageComponentData().CustomID, moveButtonPrefix)
	move, ok := entities.ParseMove(token)
	if !ok {
		return "", false, nil
	}
	return move, true, nil
}

func (in *interactor) deletePrompt(channelID, messageID string) {
	if err := in.session.ChannelMessageDelete(channelID, messageID); err != nil {
		log.Warnf("Failed to delete duel prompt %s: %v", messageID, err)
	}
}
