package duel

import (
	"context"
	"errors"
	"fmt"

	"duelbot/bot/common"
	"duelbot/domain/entities"
	"duelbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleChallenge(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var stake int64
	var opponentUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			stake = opt.IntValue()
		case "user":
			opponentUser = opt.UserValue(s)
		}
	}

	if stake <= 0 {
		common.HandleError(s, i, common.NewUserError("The stake must be positive.", "non-positive stake"), false)
		return
	}
	if opponentUser == nil {
		common.HandleError(s, i, common.NewUserError("Invalid opponent.", "missing opponent option"), false)
		return
	}
	if opponentUser.Bot {
		common.HandleError(s, i, common.NewUserError("Bots do not gamble.", "bot opponent"), false)
		return
	}
	if opponentUser.ID == i.Member.User.ID {
		common.HandleError(s, i, common.NewUserError("You cannot challenge yourself.", "self challenge"), false)
		return
	}

	challengerID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse challenger ID"), false)
		return
	}
	opponentID, err := common.ParseUserID(opponentUser.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse opponent ID"), false)
		return
	}
	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse guild ID"), false)
		return
	}

	// The command must be answered within seconds; the duel itself can run
	// for minutes, so announce first and drive the session afterwards.
	announcement := fmt.Sprintf("⚔️ %s challenged %s to rock-paper-scissors for **%s vbucks**!",
		common.GetUserMention(challengerID),
		common.GetUserMention(opponentID),
		common.FormatBalance(stake))
	if err := common.RespondWithContent(s, i, announcement, false); err != nil {
		log.Errorf("Error announcing duel: %v", err)
		return
	}

	session := entities.NewDuelSession(guildID, i.ChannelID,
		entities.Participant{DiscordID: challengerID, Username: i.Member.User.Username},
		entities.Participant{DiscordID: opponentID, Username: opponentUser.Username, IsBot: opponentUser.Bot},
		stake)

	ledger := services.NewLedger(guildID, f.uowFactory, f.emitter)
	duelService := services.NewDuelService(ledger, newInteractor(s, f.timeout), f.emitter)

	if err := duelService.Run(ctx, session); err != nil {
		f.reportFailure(s, i, session, err)
		return
	}

	f.reportOutcome(s, i, session)
}

// reportFailure translates engine errors into user-facing follow-ups
func (f *Feature) reportFailure(s *discordgo.Session, i *discordgo.InteractionCreate, session *entities.DuelSession, err error) {
	var ife *entities.InsufficientFundsError
	switch {
	case errors.As(err, &ife):
		// Announced publicly so both players see why the duel ended.
		message := fmt.Sprintf("%s cannot cover the stake: has **%s**, needs **%s vbucks**. Duel cancelled.",
			common.GetUserMention(ife.DiscordID),
			common.FormatBalance(ife.Have),
			common.FormatBalance(ife.Need))
		if _, fErr := common.FollowUpWithContent(s, i, message, false); fErr != nil {
			log.Errorf("Error reporting insufficient funds: %v", fErr)
		}
	case errors.Is(err, entities.ErrInvalidOpponent):
		common.HandleError(s, i, common.NewUserError("That opponent cannot be challenged.", "invalid opponent"), true)
	default:
		common.HandleError(s, i,
			common.NewSystemError(err, fmt.Sprintf("duel %s failed in phase %s", session.ID, session.Phase)), true)
	}
}

// reportOutcome announces how a cleanly finished session ended
func (f *Feature) reportOutcome(s *discordgo.Session, i *discordgo.InteractionCreate, session *entities.DuelSession) {
	var message string
	switch session.Phase {
	case entities.DuelPhaseDeclined:
		message = fmt.Sprintf("%s declined the challenge.", common.GetUserMention(session.Opponent.DiscordID))
	case entities.DuelPhaseTimedOut:
		message = "The duel timed out waiting for a response. Nobody loses their vbucks."
	case entities.DuelPhaseResolved:
		message = resultMessage(session)
	default:
		log.Warnf("Duel %s finished in unexpected phase %s", session.ID, session.Phase)
		return
	}

	if _, err := common.FollowUpWithContent(s, i, message, false); err != nil {
		log.Errorf("Error announcing duel outcome: %v", err)
	}
}
