package expense

import (
	"sort"

	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/domain/user"
)

// Balance is a user's net position on a trip. Positive means the user is owed
// money, negative means the user owes.
type Balance struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name,omitempty"`
	Amount float64 `json:"amount"`
}

// Total sums all expense amounts.
func Total(expenses []trip.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// ComputeBalances splits the total evenly across users and returns each
// user's paid amount minus their share, largest creditor first. Users with
// equal balances keep their input order.
func ComputeBalances(expenses []trip.Expense, users []user.User) []Balance {
	if len(users) == 0 {
		return []Balance{}
	}

	share := Total(expenses) / float64(len(users))
	paid := make(map[string]float64, len(users))
	for _, e := range expenses {
		paid[e.PayerID] += e.Amount
	}

	out := make([]Balance, 0, len(users))
	for _, u := range users {
		out = append(out, Balance{UserID: u.ID, Name: u.Name, Amount: paid[u.ID] - share})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

// Participants picks the users a trip's expenses are split across: the trip's
// participants plus anyone who paid for something. Trips without a
// participant list split across every known user.
func Participants(t trip.Trip, all []user.User) []user.User {
	if len(t.Participants) == 0 {
		return all
	}

	wanted := make(map[string]bool, len(t.Participants))
	for _, id := range t.Participants {
		wanted[id] = true
	}
	for _, e := range t.Expenses {
		wanted[e.PayerID] = true
	}

	out := make([]user.User, 0, len(wanted))
	for _, u := range all {
		if wanted[u.ID] {
			out = append(out, u)
			delete(wanted, u.ID)
		}
	}
	// Ids with no user document yet still take a share.
	for _, id := range t.Participants {
		if wanted[id] {
			out = append(out, user.User{ID: id})
			delete(wanted, id)
		}
	}
	for _, e := range t.Expenses {
		if wanted[e.PayerID] {
			out = append(out, user.User{ID: e.PayerID})
			delete(wanted, e.PayerID)
		}
	}
	return out
}
