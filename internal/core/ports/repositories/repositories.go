package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	PeriodRepo    PeriodRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	ReportingRepo ReportingRepositoryFacade
	SettingsRepo  SettingsRepositoryFacade
	InvoiceReader InvoiceReader
}
