package balance

import (
	"duelbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
	emitter    interfaces.EventEmitter
}

func New(uowFactory interfaces.UnitOfWorkFactory, emitter interfaces.EventEmitter) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		emitter:    emitter,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBalance(s, i)
}
