package duel

import (
	"context"
	"sync"
	"time"

	"duelbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// componentWaiter collects button presses on a single message. Only the
// expected user's press is delivered; anyone else poking the buttons gets an
// ephemeral rebuff and the prompt stays open.
type componentWaiter struct {
	messageID string
	userID    string
	presses   chan *discordgo.InteractionCreate
	remove    func()
	closeOnce sync.Once
}

func newComponentWaiter(s *discordgo.Session, messageID, userID string) *componentWaiter {
	w := &componentWaiter{
		messageID: messageID,
		userID:    userID,
		presses:   make(chan *discordgo.InteractionCreate, 1),
	}

	w.remove = s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionMessageComponent {
			return
		}
		if i.Message == nil || i.Message.ID != w.messageID {
			return
		}
		if i.Member == nil || i.Member.User == nil {
			return
		}

		if i.Member.User.ID != w.userID {
			if err := common.RespondWithContent(s, i, "This is not meant for you!", true); err != nil {
				log.Errorf("Error rebuffing component press: %v", err)
			}
			return
		}

		common.AcknowledgeComponent(s, i)
		select {
		case w.presses <- i:
		default:
			// A press already arrived; later ones are irrelevant.
		}
	})

	return w
}

// Await blocks until the expected user presses a button. ok is false when the
// timeout elapses or the context is cancelled first.
func (w *componentWaiter) Await(ctx context.Context, timeout time.Duration) (*discordgo.InteractionCreate, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case press := <-w.presses:
		return press, true
	case <-timer.C:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// Close detaches the waiter from the session. Safe to call more than once.
func (w *componentWaiter) Close() {
	w.closeOnce.Do(w.remove)
}
