package planner

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rpggio/wanderlist/internal/domain/expense"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/domain/user"
)

// entry turns input into a ledger entry in the reporting currency. A blank
// payer is filled with fallback.
func (s *Service) entry(in ExpenseInput, fallback string) (expense.Entry, error) {
	amount := in.Amount
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency != "" && s.converter.Foreign != "" && currency == strings.ToUpper(s.converter.Foreign) {
		converted, err := s.converter.Convert(in.Amount, in.Rate)
		if err != nil {
			return expense.Entry{}, err
		}
		amount = converted
	}
	payer := strings.TrimSpace(in.PayerID)
	if payer == "" {
		payer = fallback
	}
	e := expense.Entry{Description: in.Description, Amount: amount, PayerID: payer}
	return e, e.Validate()
}

// checkPayer accepts the device user, the trip's participants and any known
// user.
func (s *Service) checkPayer(t trip.Trip, payer string) error {
	if payer == s.userID || t.HasParticipant(payer) {
		return nil
	}
	if _, ok := user.Find(s.state.Users(), payer); ok {
		return nil
	}
	return fmt.Errorf("%w: unknown payer %q", expense.ErrInvalidInput, payer)
}

// AddExpense records a payment dated today at the top of the list.
func (s *Service) AddExpense(ctx context.Context, tripID string, in ExpenseInput) (trip.Expense, error) {
	e, err := s.entry(in, s.userID)
	if err != nil {
		return trip.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(tripID)
	if err != nil {
		return trip.Expense{}, err
	}
	if err := s.checkPayer(t, e.PayerID); err != nil {
		return trip.Expense{}, err
	}
	expenses, created, err := expense.Add(t.Expenses, e, s.today())
	if err != nil {
		return trip.Expense{}, err
	}
	s.dispatch.ReplaceExpenses(ctx, t.ID, expenses)
	return created, nil
}

// UpdateExpense rewrites a payment, keeping its date. A blank payer keeps the
// current one.
func (s *Service) UpdateExpense(ctx context.Context, tripID, expenseID string, in ExpenseInput) (trip.Expense, error) {
	// The payer is resolved once the trip is loaded.
	if _, err := s.entry(in, s.userID); err != nil {
		return trip.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(tripID)
	if err != nil {
		return trip.Expense{}, err
	}
	idx := slices.IndexFunc(t.Expenses, func(x trip.Expense) bool { return x.ID == expenseID })
	if idx < 0 {
		return trip.Expense{}, expense.ErrExpenseNotFound
	}
	e, err := s.entry(in, t.Expenses[idx].PayerID)
	if err != nil {
		return trip.Expense{}, err
	}
	if strings.TrimSpace(in.PayerID) != "" {
		if err := s.checkPayer(t, e.PayerID); err != nil {
			return trip.Expense{}, err
		}
	}
	expenses, err := expense.Update(t.Expenses, expenseID, e)
	if err != nil {
		return trip.Expense{}, err
	}
	s.dispatch.ReplaceExpenses(ctx, t.ID, expenses)
	for _, x := range expenses {
		if x.ID == expenseID {
			return x, nil
		}
	}
	return trip.Expense{}, expense.ErrExpenseNotFound
}

// DeleteExpense removes a payment.
func (s *Service) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(tripID)
	if err != nil {
		return err
	}
	expenses, err := expense.Remove(t.Expenses, expenseID)
	if err != nil {
		return err
	}
	s.dispatch.ReplaceExpenses(ctx, t.ID, expenses)
	return nil
}

// Balances splits a trip's expenses across its participants.
func (s *Service) Balances(tripID string) ([]expense.Balance, error) {
	s.mu.Lock()
	t, err := s.load(tripID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return expense.ComputeBalances(t.Expenses, expense.Participants(t, s.state.Users())), nil
}

// Settlements lists the transfers that clear a trip's balances.
func (s *Service) Settlements(tripID string) ([]expense.Transfer, error) {
	balances, err := s.Balances(tripID)
	if err != nil {
		return nil, err
	}
	return expense.Settle(balances), nil
}

// BalanceSheet returns totals, balances and settlements for a trip.
func (s *Service) BalanceSheet(tripID string) (BalanceSheet, error) {
	s.mu.Lock()
	t, err := s.load(tripID)
	s.mu.Unlock()
	if err != nil {
		return BalanceSheet{}, err
	}
	balances := expense.ComputeBalances(t.Expenses, expense.Participants(t, s.state.Users()))
	return BalanceSheet{
		Currency:  s.converter.Reporting,
		Total:     expense.Total(t.Expenses),
		Balances:  balances,
		Transfers: expense.Settle(balances),
	}, nil
}
