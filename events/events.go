package events

import (
	"context"
	"sync"

	"duelbot/domain/entities"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeAccountCreated EventType = "account_created"
	EventTypeLevelUp        EventType = "level_up"
	EventTypeDuelResolved   EventType = "duel_resolved"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	DiscordID       int64
	GuildID         int64
	OldBalance      int64
	NewBalance      int64
	TransactionType entities.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// AccountCreatedEvent represents the lazy creation of a new account
type AccountCreatedEvent struct {
	DiscordID int64
	GuildID   int64
	Username  string
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// LevelUpEvent represents a user crossing a level boundary
type LevelUpEvent struct {
	DiscordID int64
	GuildID   int64
	ChannelID string
	MessageID string
	OldLevel  int64
	NewLevel  int64
}

func (e LevelUpEvent) Type() EventType {
	return EventTypeLevelUp
}

// DuelResolvedEvent represents a settled duel
type DuelResolvedEvent struct {
	GuildID  int64
	WinnerID int64
	LoserID  int64
	Stake    int64
	Outcome  entities.Outcome
}

func (e DuelResolvedEvent) Type() EventType {
	return EventTypeDuelResolved
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so a slow consumer never blocks the emitter.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
