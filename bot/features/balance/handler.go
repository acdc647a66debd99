package balance

import (
	"context"
	"fmt"

	"duelbot/bot/common"
	"duelbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse guild ID"), false)
		return
	}

	ledger := services.NewLedger(guildID, f.uowFactory, f.emitter)
	account, err := ledger.GetOrCreate(ctx, discordID, i.Member.User.Username)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load account"), false)
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)

	message := fmt.Sprintf("%s, your current balance: **%s vbucks** (level %d, %s XP)",
		displayName,
		common.FormatBalance(account.Balance),
		account.Level,
		common.FormatBalance(account.Experience))
	if err := common.RespondWithContent(s, i, message, true); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}
