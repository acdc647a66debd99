package common

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// RespondWithContent sends a plain content interaction response
func RespondWithContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Content: content,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// FollowUpWithContent sends plain content as a follow-up message
func FollowUpWithContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) (*discordgo.Message, error) {
	params := &discordgo.WebhookParams{
		Content: content,
	}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.FollowupMessageCreate(i.Interaction, false, params)
}

// AcknowledgeComponent acknowledges a component interaction without changing
// the message
func AcknowledgeComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Errorf("Error acknowledging component interaction: %v", err)
	}
}
