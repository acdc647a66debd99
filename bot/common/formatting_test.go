package common

import (
	"testing"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		name     string
		balance  int64
		expected string
	}{
		{"Zero", 0, "0"},
		{"Less than 1k", 999, "999"},
		{"Exactly 1k", 1000, "1,000"},
		{"Tens of thousands", 15566, "15,566"},
		{"Hundreds of thousands", 932300, "932,300"},
		{"Millions", 1500000, "1,500,000"},
		{"Negative three digits", -123, "-123"},
		{"Negative grouped", -1234, "-1,234"},
		{"Negative millions", -1500000, "-1,500,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatBalance(tt.balance)
			if result != tt.expected {
				t.Errorf("FormatBalance(%d) = %s; want %s", tt.balance, result, tt.expected)
			}
		})
	}
}

func TestFormatLevelUp(t *testing.T) {
	result := FormatLevelUp(123, 5)
	expected := "🎉 <@123> leveled up to **level 5**!"
	if result != expected {
		t.Errorf("FormatLevelUp(123, 5) = %s; want %s", result, expected)
	}
}
