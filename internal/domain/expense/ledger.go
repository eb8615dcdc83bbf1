package expense

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rpggio/wanderlist/internal/domain/trip"
)

// Entry is an expense as typed by a user.
type Entry struct {
	Description string
	Amount      float64
	PayerID     string
}

// Validate checks the entry fields.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(e.PayerID) == "" {
		return fmt.Errorf("%w: payer is required", ErrInvalidInput)
	}
	return nil
}

// Add puts a new expense dated on at the front of the list.
func Add(expenses []trip.Expense, e Entry, on trip.Date) ([]trip.Expense, trip.Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, trip.Expense{}, err
	}
	created := trip.Expense{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(e.Description),
		Amount:      e.Amount,
		PayerID:     e.PayerID,
		Date:        on,
	}
	out := make([]trip.Expense, 0, len(expenses)+1)
	out = append(out, created)
	out = append(out, expenses...)
	return out, created, nil
}

// Update rewrites an expense in place. The original date is kept.
func Update(expenses []trip.Expense, id string, e Entry) ([]trip.Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(expenses, func(x trip.Expense) bool { return x.ID == id })
	if idx < 0 {
		return nil, ErrExpenseNotFound
	}
	out := slices.Clone(expenses)
	out[idx].Description = strings.TrimSpace(e.Description)
	out[idx].Amount = e.Amount
	out[idx].PayerID = e.PayerID
	return out, nil
}

// Remove drops an expense.
func Remove(expenses []trip.Expense, id string) ([]trip.Expense, error) {
	idx := slices.IndexFunc(expenses, func(x trip.Expense) bool { return x.ID == id })
	if idx < 0 {
		return nil, ErrExpenseNotFound
	}
	return slices.Delete(slices.Clone(expenses), idx, idx+1), nil
}
