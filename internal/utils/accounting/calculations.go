package accounting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClassFromCode derives the OHADA class from the leading digit of an account
// code. Codes are numeric strings of 1 to 10 digits.
func ClassFromCode(code string) (domain.AccountClass, error) {
	if code == "" || len(code) > 10 {
		return 0, fmt.Errorf("account code %q must be 1 to 10 digits", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("account code %q must be numeric", code)
		}
	}
	class := domain.AccountClass(code[0] - '0')
	if class < domain.ClassDurableResources || class > domain.ClassRevenues {
		return 0, fmt.Errorf("account code %q does not start with an OHADA class digit (1-7)", code)
	}
	return class, nil
}

// classTypes maps each OHADA class to the account types it admits. Class 4
// (comptes de tiers) holds both receivables and payables and is the only
// mixed class.
var classTypes = map[domain.AccountClass][]domain.AccountType{
	domain.ClassDurableResources: {domain.Liability},
	domain.ClassFixedAssets:      {domain.Asset},
	domain.ClassStocks:           {domain.Asset},
	domain.ClassThirdParties:     {domain.Asset, domain.Liability},
	domain.ClassTreasury:         {domain.Asset},
	domain.ClassExpenses:         {domain.Expense},
	domain.ClassRevenues:         {domain.Revenue},
}

// ClassAllowsType reports whether an account of the given class may carry
// the given type.
func ClassAllowsType(class domain.AccountClass, t domain.AccountType) bool {
	for _, allowed := range classTypes[class] {
		if allowed == t {
			return true
		}
	}
	return false
}

// IsChildCode reports whether child extends parent in the hierarchical
// numbering scheme: same class, parent's code a strict prefix.
func IsChildCode(parent, child string) bool {
	return len(child) > len(parent) && strings.HasPrefix(child, parent)
}

// NetSide splits a cumulative position into its solde débiteur/créditeur:
// the absolute difference lands on the heavier side, the other side is zero.
func NetSide(cumulativeDebit, cumulativeCredit decimal.Decimal) (debtor, creditor decimal.Decimal) {
	diff := cumulativeDebit.Sub(cumulativeCredit)
	if diff.IsNegative() {
		return decimal.Zero, diff.Neg()
	}
	return diff, decimal.Zero
}

// ComputeAccountBalances folds one account's entries of a single exercise
// into per-period balance rows. Periods are processed chronologically: each
// row's opening is the previous row's cumulative. Rows are emitted only for
// periods carrying movement, which is exactly what incremental posting
// produces, so full recomputation and incremental recomputation agree.
// The fold is a pure function of the entry set and therefore idempotent.
func ComputeAccountBalances(exerciseID, accountID string, entries []domain.Entry) []domain.Balance {
	movDebit := make(map[domain.Period]decimal.Decimal)
	movCredit := make(map[domain.Period]decimal.Decimal)
	for _, e := range entries {
		if e.AccountID != accountID {
			continue
		}
		movDebit[e.Period] = movDebit[e.Period].Add(e.Debit)
		movCredit[e.Period] = movCredit[e.Period].Add(e.Credit)
	}

	periods := make([]domain.Period, 0, len(movDebit))
	for p := range movDebit {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	balances := make([]domain.Balance, 0, len(periods))
	openDebit, openCredit := decimal.Zero, decimal.Zero
	for _, p := range periods {
		cumDebit := openDebit.Add(movDebit[p])
		cumCredit := openCredit.Add(movCredit[p])
		debtor, creditor := NetSide(cumDebit, cumCredit)
		balances = append(balances, domain.Balance{
			ExerciseID:       exerciseID,
			AccountID:        accountID,
			Period:           p,
			OpeningDebit:     openDebit,
			OpeningCredit:    openCredit,
			MovementDebit:    movDebit[p],
			MovementCredit:   movCredit[p],
			CumulativeDebit:  cumDebit,
			CumulativeCredit: cumCredit,
			DebtorBalance:    debtor,
			CreditorBalance:  creditor,
		})
		openDebit, openCredit = cumDebit, cumCredit
	}
	return balances
}

// ComputeExerciseBalances rebuilds every balance row of an exercise from its
// full entry set, accounts ordered deterministically by id.
func ComputeExerciseBalances(exerciseID string, entries []domain.Entry) []domain.Balance {
	byAccount := make(map[string][]domain.Entry)
	for _, e := range entries {
		byAccount[e.AccountID] = append(byAccount[e.AccountID], e)
	}

	accountIDs := make([]string, 0, len(byAccount))
	for id := range byAccount {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	var balances []domain.Balance
	for _, id := range accountIDs {
		balances = append(balances, ComputeAccountBalances(exerciseID, id, byAccount[id])...)
	}
	return balances
}
