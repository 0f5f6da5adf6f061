package models

import "fmt"

// SplitMode selects how an expense total is divided among included members.
type SplitMode string

const (
	// SplitEqually divides the total evenly among included members.
	SplitEqually SplitMode = "Equally"

	// SplitAsAmounts lets the user assign each included member's share.
	// Any positive shortfall is topped up evenly; an excess is left alone.
	SplitAsAmounts SplitMode = "As Amounts"
)

// ParseSplitMode accepts the wire values as well as the short forms
// "equal" and "manual".
func ParseSplitMode(s string) (SplitMode, error) {
	switch s {
	case string(SplitEqually), "equal", "equally", "":
		return SplitEqually, nil
	case string(SplitAsAmounts), "manual", "amounts", "as-amounts":
		return SplitAsAmounts, nil
	}
	return "", fmt.Errorf("unknown split mode: %q", s)
}

// Member is one participant eligible to share an expense.
type Member struct {
	// ID is the member's user ID, unique within the group.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Avatar is an optional avatar URL.
	Avatar string `json:"avatar,omitempty"`

	// IsMe marks the logged-in user.
	IsMe bool `json:"isMe"`

	// Included reports whether the member participates in this split.
	// Excluded members always carry a zero Amount.
	Included bool `json:"included"`

	// Amount is the member's current share of the total.
	Amount float64 `json:"amount"`
}
