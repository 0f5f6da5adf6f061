package calculator

import (
	"errors"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/models"
)

// ErrUnknownMember is returned when a member event names an ID that is not
// in the working set.
var ErrUnknownMember = errors.New("unknown member")

// maxAmountLen bounds the length of an amount string. Anything longer is
// not a money amount.
const maxAmountLen = 24

// plainDecimal matches amounts in positional notation. Exponent forms are
// rejected before they reach decimal, which expands them into big integers.
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// ParseAmount converts a decimal string to a float64.
// Empty, unparseable or non-finite input yields 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxAmountLen || !plainDecimal.MatchString(s) {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f := d.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseTotal parses an expense total. Negative totals are treated as 0.
func ParseTotal(s string) float64 {
	total := ParseAmount(s)
	if total < 0 {
		return 0
	}
	return total
}

// SeedMembers builds the initial working set from a group's membership list:
// everyone included, every amount zero.
func SeedMembers(group []models.GroupMember, currentUserID string) []models.Member {
	members := make([]models.Member, len(group))
	for i, gm := range group {
		members[i] = models.Member{
			ID:       gm.UserID,
			Name:     gm.Name,
			Avatar:   gm.Avatar,
			IsMe:     gm.UserID == currentUserID,
			Included: true,
		}
	}
	return members
}

// IncludedCount returns the number of members participating in the split.
func IncludedCount(members []models.Member) int {
	n := 0
	for _, m := range members {
		if m.Included {
			n++
		}
	}
	return n
}

// AssignedTotal sums the amounts of included members.
func AssignedTotal(members []models.Member) float64 {
	var sum float64
	for _, m := range members {
		if m.Included {
			sum += m.Amount
		}
	}
	return sum
}

// Recompute returns the members' shares of total under the given mode.
//
// Equally: every included member gets total / includedCount, everyone else 0.
// As Amounts: a positive shortfall (total minus the included sum) is added
// evenly onto each included member in a single pass; an excess is left as is.
//
// The input slice is never modified. changed is false when the result is
// value-identical to the input, in which case the input slice is returned.
func Recompute(total float64, mode models.SplitMode, members []models.Member) (out []models.Member, changed bool) {
	included := IncludedCount(members)
	next := slices.Clone(members)

	switch mode {
	case models.SplitAsAmounts:
		remaining := total - AssignedTotal(members)
		if remaining > 0 && included > 0 {
			topUp := remaining / float64(included)
			for i := range next {
				if next[i].Included {
					next[i].Amount += topUp
				} else {
					next[i].Amount = 0
				}
			}
		}
	default:
		var perShare float64
		if included > 0 {
			perShare = total / float64(included)
		}
		for i := range next {
			if next[i].Included {
				next[i].Amount = perShare
			} else {
				next[i].Amount = 0
			}
		}
	}

	if slices.Equal(members, next) {
		return members, false
	}
	return next, true
}

// ToggleMember sets a member's inclusion. Excluding a member zeroes its
// amount immediately; including one keeps the amount until the next
// Recompute assigns a share.
func ToggleMember(members []models.Member, id string, included bool) ([]models.Member, error) {
	i := slices.IndexFunc(members, func(m models.Member) bool { return m.ID == id })
	if i < 0 {
		return nil, ErrUnknownMember
	}
	next := slices.Clone(members)
	next[i].Included = included
	if !included {
		next[i].Amount = 0
	}
	return next, nil
}

// SetMemberAmount overwrites one member's amount without touching the others.
func SetMemberAmount(members []models.Member, id string, amount float64) ([]models.Member, error) {
	i := slices.IndexFunc(members, func(m models.Member) bool { return m.ID == id })
	if i < 0 {
		return nil, ErrUnknownMember
	}
	next := slices.Clone(members)
	next[i].Amount = amount
	return next, nil
}

// FormatAmount renders an amount with two decimal places.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
