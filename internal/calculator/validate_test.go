package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/mmynk/spendwise/internal/models"
)

func TestValidate(t *testing.T) {
	equalThree, _ := Recompute(100, models.SplitEqually, members("A", "B", "C"))

	tests := []struct {
		name      string
		draft     Draft
		wantErr   error
		wantField string
	}{
		{
			name:      "unparseable total",
			draft:     Draft{Title: "Dinner", Total: "abc", PaidByID: "A", Category: models.CategoryFood, Members: equalThree},
			wantErr:   ErrInvalidTotal,
			wantField: "amount",
		},
		{
			name:      "zero total",
			draft:     Draft{Title: "Dinner", Total: "0", PaidByID: "A", Category: models.CategoryFood, Members: equalThree},
			wantErr:   ErrInvalidTotal,
			wantField: "amount",
		},
		{
			name:      "negative total",
			draft:     Draft{Title: "Dinner", Total: "-10", PaidByID: "A", Category: models.CategoryFood, Members: equalThree},
			wantErr:   ErrInvalidTotal,
			wantField: "amount",
		},
		{
			name:      "missing title",
			draft:     Draft{Title: "  ", Total: "100", PaidByID: "A", Category: models.CategoryFood, Members: equalThree},
			wantErr:   ErrTitleRequired,
			wantField: "title",
		},
		{
			name:      "unknown category",
			draft:     Draft{Title: "Dinner", Total: "100", PaidByID: "A", Category: models.Category(12), Members: equalThree},
			wantErr:   ErrUnknownCategory,
			wantField: "category",
		},
		{
			name:  "over-assigned manual split",
			draft: Draft{Title: "Dinner", Total: "50", PaidByID: "A", Category: models.CategoryFood, Members: []models.Member{
				{ID: "A", Included: true, Amount: 30},
				{ID: "B", Included: true, Amount: 30},
			}},
			wantErr:   ErrSplitMismatch,
			wantField: "splitWith",
		},
		{
			name:      "payer not a member",
			draft:     Draft{Title: "Dinner", Total: "100", PaidByID: "Z", Category: models.CategoryFood, Members: equalThree},
			wantErr:   ErrPayerNotFound,
			wantField: "paidBy",
		},
		{
			name: "single positive share",
			draft: Draft{Title: "Dinner", Total: "100", PaidByID: "A", Category: models.CategoryFood, Members: []models.Member{
				{ID: "A", Included: true, Amount: 100},
				{ID: "B", Included: true},
				{ID: "C", Included: false},
			}},
			wantErr:   ErrTooFewMembers,
			wantField: "splitWith",
		},
		{
			name:  "valid equal split",
			draft: Draft{GroupID: "g1", Title: " Dinner ", Total: "100", PaidByID: "A", Category: models.CategoryFood, Members: equalThree},
		},
		{
			name: "within tolerance",
			draft: Draft{Title: "Cab", Total: "10", PaidByID: "B", Category: models.CategoryTransportation, Members: []models.Member{
				{ID: "A", Included: true, Amount: 3.335},
				{ID: "B", Included: true, Amount: 3.335},
				{ID: "C", Included: true, Amount: 3.335},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Validate(tt.draft)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Field != tt.wantField {
					t.Errorf("Validate() field = %v, want %s", err, tt.wantField)
				}
				if req != nil {
					t.Error("Validate() returned a payload alongside an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if req.Amount != ParseAmount(tt.draft.Total) {
				t.Errorf("Amount = %v, want %v", req.Amount, tt.draft.Total)
			}
			if req.PaidByID != tt.draft.PaidByID {
				t.Errorf("PaidByID = %q, want %q", req.PaidByID, tt.draft.PaidByID)
			}
		})
	}
}

func TestValidate_Payload(t *testing.T) {
	ms, _ := Recompute(100, models.SplitEqually, members("A", "B", "C", "D"))
	ms, _ = ToggleMember(ms, "D", false)
	ms, _ = Recompute(90, models.SplitEqually, ms)

	req, err := Validate(Draft{
		GroupID:  "g1",
		Title:    " Groceries run ",
		Total:    "90",
		PaidByID: "B",
		Category: models.CategoryGroceries,
		Members:  ms,
	})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if req.GroupID != "g1" || req.Title != "Groceries run" || req.Category != models.CategoryGroceries {
		t.Errorf("unexpected payload header: %+v", req)
	}
	if len(req.Splits) != 3 {
		t.Fatalf("expected 3 splits, got %d", len(req.Splits))
	}
	for _, s := range req.Splits {
		if s.UserID == "D" {
			t.Error("excluded member D must not appear in splits")
		}
		if math.Abs(s.Amount-30) > 0.01 {
			t.Errorf("%s split = %v, want 30", s.UserID, s.Amount)
		}
	}
}

func TestShares_SkipsNonPositive(t *testing.T) {
	got := Shares([]models.Member{
		{ID: "A", Included: true, Amount: 10},
		{ID: "B", Included: true, Amount: -2},
		{ID: "C", Included: true},
		{ID: "D", Included: false, Amount: 5},
	})
	if len(got) != 1 || got[0].UserID != "A" {
		t.Errorf("Shares() = %+v, want only A", got)
	}
}
