package domain

// AccountType is the fundamental OHADA nature of an account.
type AccountType string

const (
	Asset     AccountType = "ACTIF"
	Liability AccountType = "PASSIF"
	Expense   AccountType = "CHARGE"
	Revenue   AccountType = "PRODUIT"
)

// AccountClass is an OHADA chart-of-accounts class (1 through 7), always
// derivable from the leading digit of the account code.
type AccountClass int

const (
	ClassDurableResources AccountClass = 1 // Comptes de ressources durables
	ClassFixedAssets      AccountClass = 2 // Comptes d'actif immobilisé
	ClassStocks           AccountClass = 3 // Comptes de stocks
	ClassThirdParties     AccountClass = 4 // Comptes de tiers
	ClassTreasury         AccountClass = 5 // Comptes de trésorerie
	ClassExpenses         AccountClass = 6 // Comptes de charges
	ClassRevenues         AccountClass = 7 // Comptes de produits
)

// Account is one node of the plan comptable. Accounts form a tree rooted at
// single-digit class accounts; a child's code extends its parent's code.
type Account struct {
	AccountID       string       `json:"accountID"`
	Code            string       `json:"code"`     // Hierarchical numeric code, unique
	Name            string       `json:"name"`     // Intitulé
	Class           AccountClass `json:"class"`    // Derived from the code's leading digit
	AccountType     AccountType  `json:"type"`     // ACTIF, PASSIF, CHARGE, PRODUIT
	Level           int          `json:"level"`    // Depth in the hierarchy, 1 for class roots
	ParentAccountID *string      `json:"parentAccountID"`
	IsActive        bool         `json:"isActive"`
	AuditFields
}
