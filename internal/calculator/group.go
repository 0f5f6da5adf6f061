package calculator

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/spendwise/internal/models"
)

// DefaultPageSize is how many transactions a page holds when none is asked for.
const DefaultPageSize = 10

var (
	ErrInvalidGroupCode = errors.New("group code must be 6 letters or digits")
	ErrAlreadyMember    = errors.New("you are already a member of this group")
	ErrStandingUnknown  = errors.New("group balance is not available")
	ErrUnsettledLeave   = errors.New("settle up before leaving the group")
	ErrUnsettledDelete  = errors.New("the group can only be deleted once everyone is settled up")
)

var codeValidator = validator.New()

// NormalizeGroupCode trims code and checks it is six alphanumeric characters.
func NormalizeGroupCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if err := codeValidator.Var(code, "required,len=6,alphanum"); err != nil {
		return "", &ValidationError{Field: "groupCode", Err: ErrInvalidGroupCode}
	}
	return code, nil
}

// CheckNotMember rejects a code that belongs to a group the caller is in.
func CheckNotMember(code string, groups []models.Group) error {
	for _, g := range groups {
		if strings.EqualFold(g.Code, code) {
			return &ValidationError{Field: "groupCode", Err: ErrAlreadyMember}
		}
	}
	return nil
}

// LeaveAction is what leaving a group means for the caller.
type LeaveAction int

const (
	// LeaveActionLeave removes a member from the group.
	LeaveActionLeave LeaveAction = iota + 1

	// LeaveActionDelete deletes the group. Only its creator gets this.
	LeaveActionDelete
)

func (a LeaveAction) String() string {
	switch a {
	case LeaveActionLeave:
		return "leave"
	case LeaveActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// DecideLeave works out whether userID may leave the group shown on page.
// The creator deletes the group instead of leaving it. Either way the
// caller's balance must be zero.
func DecideLeave(page *models.GroupPage, userID string) (LeaveAction, error) {
	if page == nil || page.Leave == nil {
		return 0, ErrStandingUnknown
	}
	settled := math.Abs(page.Leave.Amount) < 0.005
	if page.CreatorID != "" && page.CreatorID == userID {
		if !settled {
			return 0, &ValidationError{Field: "leave", Err: ErrUnsettledDelete}
		}
		return LeaveActionDelete, nil
	}
	if !settled {
		return 0, &ValidationError{Field: "leave", Err: ErrUnsettledLeave}
	}
	return LeaveActionLeave, nil
}

// TransactionSort selects the transaction list ordering.
type TransactionSort string

const (
	SortByDate   TransactionSort = "date"
	SortByAmount TransactionSort = "amount"
)

// TransactionQuery describes one page of the transaction list.
type TransactionQuery struct {
	SortBy    TransactionSort
	Ascending bool

	// Page is 1-based. Out of range values are clamped.
	Page     int
	PageSize int

	// Detailed includes settlement rows.
	Detailed bool
}

// TransactionPage is one page of a sorted, filtered transaction list.
type TransactionPage struct {
	Items      []models.Transaction
	Page       int
	TotalPages int
	Total      int
}

// ListTransactions filters, sorts and pages txs. The input is not modified.
// Sorting defaults to newest first.
func ListTransactions(txs []models.Transaction, q TransactionQuery) TransactionPage {
	rows := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Status == models.TransactionSettlement && !q.Detailed {
			continue
		}
		rows = append(rows, tx)
	}

	slices.SortStableFunc(rows, func(a, b models.Transaction) int {
		var c int
		if q.SortBy == SortByAmount {
			c = cmp.Compare(a.Amount, b.Amount)
		} else {
			c = strings.Compare(a.Date, b.Date)
		}
		if !q.Ascending {
			c = -c
		}
		return c
	})

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := max(1, (len(rows)+size-1)/size)
	page := min(max(q.Page, 1), pages)

	start := min((page-1)*size, len(rows))
	end := min(start+size, len(rows))
	return TransactionPage{
		Items:      rows[start:end],
		Page:       page,
		TotalPages: pages,
		Total:      len(rows),
	}
}
