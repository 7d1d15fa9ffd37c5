package services

import (
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/platform/config"
)

// NewServiceContainer wires every application service against the repository
// provider and the deployment configuration.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	entrySvc := NewEntryService(
		EntryServiceConfig{
			CurrencyCode:      cfg.CurrencyCode,
			OrgLocation:       cfg.OrgLocation,
			BookPOSCommission: cfg.POSBookCommission,
		},
		repos.EntryRepo,
		repos.BankAccountRepo,
		repos.CardRepo,
		repos.ContactRepo,
		repos.TagRepo,
		notifier,
	)
	checkSvc := NewCheckService(
		CheckServiceConfig{
			CurrencyCode: cfg.CurrencyCode,
			OrgLocation:  cfg.OrgLocation,
		},
		repos.CheckRepo,
		repos.ContactRepo,
		repos.BankAccountRepo,
	)
	reportingSvc := NewReportingService(repos.ReportingRepo, repos.BankAccountRepo, repos.TagRepo)
	userSvc := NewUserService(repos.UserRepo)
	tokenSvc := NewTokenService(
		TokenServiceConfig{
			Secret:         cfg.JWTSecret,
			ExpiryDuration: cfg.JWTExpiryDuration,
			Issuer:         cfg.JWTIssuer,
		},
		userSvc,
	)

	return &portssvc.ServiceContainer{
		Entry:       entrySvc,
		Check:       checkSvc,
		Reporting:   reportingSvc,
		BankAccount: NewBankAccountService(repos.BankAccountRepo),
		Card:        NewCardService(repos.CardRepo),
		Contact:     NewContactService(repos.ContactRepo),
		Tag:         NewTagService(repos.TagRepo),
		User:        userSvc,
		Token:       tokenSvc,
	}
}
