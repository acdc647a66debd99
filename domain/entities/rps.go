package entities

import (
	"strings"
)

// Move is a rock-paper-scissors choice
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// Moves lists all valid moves in prompt order
func Moves() []Move {
	return []Move{MoveRock, MovePaper, MoveScissors}
}

// ParseMove parses a move token case-insensitively. An unknown token yields
// ok == false rather than an error: it means no choice was made.
func ParseMove(token string) (Move, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "rock":
		return MoveRock, true
	case "paper":
		return MovePaper, true
	case "scissors":
		return MoveScissors, true
	default:
		return "", false
	}
}

// Label returns the capitalized display form of the move
func (m Move) Label() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Outcome is the result of a duel from the challenger's perspective
type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "tie"
	}
}

// beats maps each move to the move it defeats
var beats = map[Move]Move{
	MoveRock:     MoveScissors,
	MovePaper:    MoveRock,
	MoveScissors: MovePaper,
}

// Resolve returns the outcome of own vs opponent. The mapping is
// antisymmetric: Resolve(a, b) == Win exactly when Resolve(b, a) == Loss,
// and identical moves always tie.
func Resolve(own, opponent Move) Outcome {
	switch {
	case own == opponent:
		return OutcomeTie
	case beats[own] == opponent:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}
