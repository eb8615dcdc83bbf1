package expense

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Transfer is one payment that moves a debtor toward zero.
type Transfer struct {
	FromUserID string  `json:"from_user_id"`
	ToUserID   string  `json:"to_user_id"`
	Amount     float64 `json:"amount"`
}

type position struct {
	id     string
	amount decimal.Decimal
}

// Settle returns transfers that clear the balances, pairing the largest
// debtor with the largest creditor until both sides are exhausted. Amounts
// are rounded to cents.
func Settle(balances []Balance) []Transfer {
	var creditors, debtors []position
	for _, b := range balances {
		amt := decimal.NewFromFloat(b.Amount).Round(2)
		switch {
		case amt.IsPositive():
			creditors = append(creditors, position{id: b.UserID, amount: amt})
		case amt.IsNegative():
			debtors = append(debtors, position{id: b.UserID, amount: amt.Neg()})
		}
	}
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount.GreaterThan(creditors[j].amount) })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount.GreaterThan(debtors[j].amount) })

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		pay := decimal.Min(debtors[i].amount, creditors[j].amount)
		if pay.IsPositive() {
			transfers = append(transfers, Transfer{
				FromUserID: debtors[i].id,
				ToUserID:   creditors[j].id,
				Amount:     pay.InexactFloat64(),
			})
		}
		debtors[i].amount = debtors[i].amount.Sub(pay)
		creditors[j].amount = creditors[j].amount.Sub(pay)
		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}
	return transfers
}
