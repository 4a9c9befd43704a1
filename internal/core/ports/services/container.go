package services

// ServiceContainer bundles the service facades handed to the HTTP layer at
// startup.
type ServiceContainer struct {
	ChartOfAccounts ChartOfAccountsSvcFacade
	Ledger          LedgerSvcFacade
	Exercise        ExerciseSvcFacade
	Balance         BalanceSvcFacade
	Finance         FinanceSvcFacade
}
