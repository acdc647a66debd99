package duel

import (
	"time"

	"duelbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	emitter    interfaces.EventEmitter
	timeout    time.Duration
}

func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory, emitter interfaces.EventEmitter, timeout time.Duration) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		emitter:    emitter,
		timeout:    timeout,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleChallenge(s, i)
}
