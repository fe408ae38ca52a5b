package seasons

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fortuna/dugout/internal/statsapi"
)

// FormatRecord renders "W-L", or "W-L-T" when there are ties
func FormatRecord(record *statsapi.TeamRecord) string {
	if record == nil {
		return "No record"
	}
	if record.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", record.Wins, record.Losses, record.Ties)
	}
	return fmt.Sprintf("%d-%d", record.Wins, record.Losses)
}

// Initials takes the first letter of the first two words of a team name
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return b.String()
}

// FormatHandedness renders "Bats: R, Throws: L". Players without a batting
// side render nothing.
func FormatHandedness(h *statsapi.Handedness) string {
	if h == nil || h.BattingSide == "" {
		return ""
	}
	return "Bats: " + h.BattingSide + ", Throws: " + h.ThrowingHand
}

// PlayerInitials is first+last initial, whichever exist, or "?"
func PlayerInitials(firstName, lastName string) string {
	initials := firstInitial(firstName) + firstInitial(lastName)
	if initials == "" {
		return "?"
	}
	return initials
}

func firstInitial(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r))
}
