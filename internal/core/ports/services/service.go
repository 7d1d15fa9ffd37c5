package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers are wired against.
type ServiceContainer struct {
	Entry       EntrySvcFacade
	Check       CheckSvcFacade
	Reporting   ReportingSvcFacade
	BankAccount BankAccountSvcFacade
	Card        CardSvcFacade
	Contact     ContactSvcFacade
	Tag         TagSvcFacade
	User        UserSvcFacade
	Token       TokenSvcFacade
}
