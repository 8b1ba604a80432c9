package service

import (
	"sync"

	"github.com/danokoye/athenaeum/config"
	"github.com/danokoye/athenaeum/data"
	"github.com/danokoye/athenaeum/internal/clock"
	"github.com/danokoye/athenaeum/internal/jsonlog"
	"github.com/danokoye/athenaeum/repository"
)

type Service interface {
	books
	loans
	users
	tokens
	notifications
	failedValidation(map[string]string) error
}

// service defines the service layer.
type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	repo   repository.Repository
	clock  clock.Clock
	policy data.LoanPolicy
}

// New creates a new instance of Service.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository, c clock.Clock) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		repo:   repo,
		clock:  c,
		policy: data.NewLoanPolicy(loanPolicyConfig(cfg)),
	}
}

// loanPolicyConfig maps the app configuration onto the loan policy limits.
func loanPolicyConfig(cfg config.Config) data.LoanPolicyConfig {
	return data.LoanPolicyConfig{
		LoanPeriodDays:     cfg.Loans.PeriodDays,
		MaxActiveLoans:     cfg.Loans.MaxActivePerUser,
		MaxDailyLoans:      cfg.Loans.MaxPerDay,
		MaxExtensionDays:   cfg.Loans.MaxExtensionDays,
		MaxTotalLoanDays:   cfg.Loans.MaxTotalDays,
		OverdueReturnLimit: cfg.Loans.OverdueReturnLimit,
		OverdueWindowDays:  cfg.Loans.OverdueWindowDays,
		DueSoonDays:        cfg.Loans.DueSoonDays,
	}
}
