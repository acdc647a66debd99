package common

import (
	"fmt"
	"strings"
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	var sign string
	if strings.HasPrefix(str, "-") {
		sign = "-"
		str = str[1:]
	}

	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatLevelUp formats the level-up congratulation message
func FormatLevelUp(userID int64, newLevel int64) string {
	return fmt.Sprintf("🎉 %s leveled up to **level %d**!", GetUserMention(userID), newLevel)
}
