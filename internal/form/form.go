// Package form hosts the add-expense form: it owns the working member set
// and reruns the split allocator after every mutation.
package form

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/models"
)

// State is the serializable state of one open expense form.
type State struct {
	Title    string           `json:"title"`
	Total    string           `json:"amount"`
	PaidBy   string           `json:"paidBy"`
	Date     time.Time        `json:"date"`
	Mode     models.SplitMode `json:"splitType"`
	Category string           `json:"category"`
	Members  []models.Member  `json:"splitWith"`
}

// Submitter hands a validated expense to the backend.
type Submitter interface {
	AddExpense(ctx context.Context, req *models.ExpenseRequest) error
}

// ExpenseForm is a single open expense form. It is not safe for concurrent
// use; every mutation completes its recompute before returning.
type ExpenseForm struct {
	state         State
	group         []models.GroupMember
	currentUserID string
	now           func() time.Time
}

// New opens a form for the given group membership. Everyone starts
// included with a zero share, paid by the current user, split equally.
func New(group []models.GroupMember, currentUserID string) *ExpenseForm {
	f := &ExpenseForm{
		group:         slices.Clone(group),
		currentUserID: currentUserID,
		now:           time.Now,
	}
	f.Reset()
	return f
}

// FromState resumes a form from previously returned state. Excluded
// members always carry a zero amount, whatever the state says.
func FromState(s State) *ExpenseForm {
	if s.Mode == "" {
		s.Mode = models.SplitEqually
	}
	s.Members = slices.Clone(s.Members)
	for i := range s.Members {
		if !s.Members[i].Included {
			s.Members[i].Amount = 0
		}
	}
	f := &ExpenseForm{state: s, now: time.Now}
	for _, m := range s.Members {
		f.group = append(f.group, models.GroupMember{UserID: m.ID, Name: m.Name, Avatar: m.Avatar})
		if m.IsMe {
			f.currentUserID = m.ID
		}
	}
	return f
}

// Reset returns every field to its default and re-seeds the members.
func (f *ExpenseForm) Reset() {
	f.state = State{
		PaidBy:   f.currentUserID,
		Date:     f.now(),
		Mode:     models.SplitEqually,
		Category: models.DefaultCategory.String(),
		Members:  calculator.SeedMembers(f.group, f.currentUserID),
	}
}

// State returns a copy of the current form state.
func (f *ExpenseForm) State() State {
	s := f.state
	s.Members = slices.Clone(f.state.Members)
	return s
}

// Members returns a copy of the working member set.
func (f *ExpenseForm) Members() []models.Member {
	return slices.Clone(f.state.Members)
}

// Recompute reruns the allocator against the current total and mode.
// It reports whether any share changed.
func (f *ExpenseForm) Recompute() bool {
	next, changed := calculator.Recompute(calculator.ParseTotal(f.state.Total), f.state.Mode, f.state.Members)
	if changed {
		f.state.Members = next
	}
	return changed
}

// SetTotal sets the raw total and recomputes.
func (f *ExpenseForm) SetTotal(total string) {
	f.state.Total = total
	f.Recompute()
}

// SetMode switches the split mode and recomputes.
func (f *ExpenseForm) SetMode(mode models.SplitMode) {
	f.state.Mode = mode
	f.Recompute()
}

// ToggleMember includes or excludes a member and recomputes.
func (f *ExpenseForm) ToggleMember(id string, included bool) error {
	next, err := calculator.ToggleMember(f.state.Members, id, included)
	if err != nil {
		return fmt.Errorf("toggle %s: %w", id, err)
	}
	f.state.Members = next
	f.Recompute()
	return nil
}

// SetMemberAmount overwrites one member's share and recomputes, which only
// tops up a shortfall.
func (f *ExpenseForm) SetMemberAmount(id string, amount float64) error {
	next, err := calculator.SetMemberAmount(f.state.Members, id, amount)
	if err != nil {
		return fmt.Errorf("set amount for %s: %w", id, err)
	}
	f.state.Members = next
	f.Recompute()
	return nil
}

// SetMemberAmountText is SetMemberAmount for raw input; unparseable text is 0.
func (f *ExpenseForm) SetMemberAmountText(id, amount string) error {
	return f.SetMemberAmount(id, calculator.ParseAmount(amount))
}

func (f *ExpenseForm) SetTitle(title string) { f.state.Title = title }

func (f *ExpenseForm) SetPaidBy(memberID string) { f.state.PaidBy = memberID }

func (f *ExpenseForm) SetDate(date time.Time) { f.state.Date = date }

// SetCategory selects a category by name.
func (f *ExpenseForm) SetCategory(name string) error {
	c, err := models.ParseCategory(name)
	if err != nil {
		return err
	}
	f.state.Category = c.String()
	return nil
}

// Payload validates the form and builds the backend request for groupID.
func (f *ExpenseForm) Payload(groupID string) (*models.ExpenseRequest, error) {
	category, err := models.ParseCategory(f.state.Category)
	if err != nil {
		return nil, &calculator.ValidationError{Field: "category", Err: calculator.ErrUnknownCategory}
	}
	req, err := calculator.Validate(calculator.Draft{
		GroupID:  groupID,
		Title:    f.state.Title,
		Total:    f.state.Total,
		PaidByID: f.state.PaidBy,
		Category: category,
		Members:  f.state.Members,
	})
	if err != nil {
		return nil, err
	}
	req.Date = f.state.Date
	if req.Date.IsZero() {
		req.Date = f.now()
	}
	req.Date = req.Date.UTC()
	return req, nil
}

// Submit validates and hands the expense to s. A successful submission
// resets the form; on any failure the state is kept so the user can retry.
func (f *ExpenseForm) Submit(ctx context.Context, groupID string, s Submitter) (*models.ExpenseRequest, error) {
	req, err := f.Payload(groupID)
	if err != nil {
		return nil, err
	}
	if err := s.AddExpense(ctx, req); err != nil {
		slog.Warn("Expense submission failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}
	slog.Info("Expense submitted", "group_id", groupID, "amount", req.Amount, "splits", len(req.Splits))
	f.Reset()
	return req, nil
}
