package calculator

import (
	"errors"
	"math"
	"strings"

	"github.com/mmynk/spendwise/internal/models"
)

// SplitTolerance is the largest absolute difference allowed between the sum
// of the included shares and the expense total.
const SplitTolerance = 0.01

// MinSplitMembers is the minimum number of members with a positive share.
const MinSplitMembers = 2

var (
	ErrInvalidTotal    = errors.New("amount must be a valid number greater than 0")
	ErrTitleRequired   = errors.New("title is required")
	ErrSplitMismatch   = errors.New("the split amounts do not add up to the total expense amount")
	ErrPayerNotFound   = errors.New("paid-by member not found")
	ErrTooFewMembers   = errors.New("please select at least two members")
	ErrUnknownCategory = errors.New("unknown category")
)

// ValidationError reports which form field failed pre-submit validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FieldName returns the form field that failed.
func (e *ValidationError) FieldName() string {
	return e.Field
}

// Draft is everything the expense form collected, ready for validation.
type Draft struct {
	GroupID  string
	Title    string
	Total    string
	PaidByID string
	Category models.Category
	Members  []models.Member
}

// Validate checks a draft and maps it to the backend payload. Checks run in
// a fixed order and the first failure wins; nothing is sent on failure.
// The returned request has a zero Date; the caller stamps it.
func Validate(d Draft) (*models.ExpenseRequest, error) {
	total := ParseAmount(d.Total)
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return nil, &ValidationError{Field: "amount", Err: ErrInvalidTotal}
	}

	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Err: ErrTitleRequired}
	}

	if !d.Category.Valid() {
		return nil, &ValidationError{Field: "category", Err: ErrUnknownCategory}
	}

	if math.Abs(AssignedTotal(d.Members)-total) > SplitTolerance {
		return nil, &ValidationError{Field: "splitWith", Err: ErrSplitMismatch}
	}

	payerFound := false
	for _, m := range d.Members {
		if m.ID == d.PaidByID {
			payerFound = true
			break
		}
	}
	if d.PaidByID == "" || !payerFound {
		return nil, &ValidationError{Field: "paidBy", Err: ErrPayerNotFound}
	}

	splits := Shares(d.Members)
	if len(splits) < MinSplitMembers {
		return nil, &ValidationError{Field: "splitWith", Err: ErrTooFewMembers}
	}

	return &models.ExpenseRequest{
		GroupID:  d.GroupID,
		PaidByID: d.PaidByID,
		Category: d.Category,
		Amount:   total,
		Title:    title,
		Splits:   splits,
	}, nil
}

// Shares maps every included member with a positive amount to a split share.
func Shares(members []models.Member) []models.SplitShare {
	var splits []models.SplitShare
	for _, m := range members {
		if m.Included && m.Amount > 0 {
			splits = append(splits, models.SplitShare{UserID: m.ID, Amount: m.Amount})
		}
	}
	return splits
}
