package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// GetDisplayName returns the server-specific display name for a user.
// Falls back to username if nickname is not set or if there's an error.
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// FormatUserID converts an int64 user ID to string
func FormatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatUserID(userID) + ">"
}
