package duel

import (
	"fmt"

	"duelbot/bot/common"
	"duelbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

const (
	acceptButtonID   = "duel_accept"
	declineButtonID  = "duel_decline"
	moveButtonPrefix = "duel_move_"
)

var moveEmojis = map[entities.Move]string{
	entities.MoveRock:     "✊",
	entities.MovePaper:    "✋",
	entities.MoveScissors: "✌️",
}

func acceptComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		&discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.Button{
					Label:    "Accept",
					Style:    discordgo.SuccessButton,
					CustomID: acceptButtonID,
				},
				&discordgo.Button{
					Label:    "Decline",
					Style:    discordgo.DangerButton,
					CustomID: declineButtonID,
				},
			},
		},
	}
}

func moveComponents() []discordgo.MessageComponent {
	row := &discordgo.ActionsRow{}
	for _, move := range entities.Moves() {
		row.Components = append(row.Components, &discordgo.Button{
			Label:    fmt.Sprintf("%s %s", moveEmojis[move], move.Label()),
			Style:    discordgo.SecondaryButton,
			CustomID: moveButtonPrefix + string(move),
		})
	}
	return []discordgo.MessageComponent{row}
}

func challengeMessage(session *entities.DuelSession) string {
	return fmt.Sprintf("%s, %s challenges you to rock-paper-scissors for **%s vbucks**! Do you accept?",
		common.GetUserMention(session.Opponent.DiscordID),
		common.GetUserMention(session.Challenger.DiscordID),
		common.FormatBalance(session.Stake))
}

func movePromptMessage(player entities.Participant) string {
	return fmt.Sprintf("%s, pick your move!", common.GetUserMention(player.DiscordID))
}

func resultMessage(session *entities.DuelSession) string {
	challengerMove, _ := session.MoveOf(session.Challenger.DiscordID)
	opponentMove, _ := session.MoveOf(session.Opponent.DiscordID)

	reveal := fmt.Sprintf("%s threw %s %s, %s threw %s %s.",
		common.GetUserMention(session.Challenger.DiscordID),
		moveEmojis[challengerMove], challengerMove.Label(),
		common.GetUserMention(session.Opponent.DiscordID),
		moveEmojis[opponentMove], opponentMove.Label())

	switch session.Outcome {
	case entities.OutcomeTie:
		return fmt.Sprintf("%s It's a tie! Nobody loses their vbucks.", reveal)
	case entities.OutcomeWin:
		return fmt.Sprintf("%s %s wins **%s vbucks**!",
			reveal,
			common.GetUserMention(session.Challenger.DiscordID),
			common.FormatBalance(session.Stake))
	default:
		return fmt.Sprintf("%s %s wins **%s vbucks**!",
			reveal,
			common.GetUserMention(session.Opponent.DiscordID),
			common.FormatBalance(session.Stake))
	}
}
