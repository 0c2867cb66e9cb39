package scheduler

import (
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// generateSpec runs at 06:00 on the first day of every month
const generateSpec = "0 6 1 * *"

// Scheduler runs the monthly auto-generation of ledger entries from
// recurring items for every registered user.
type Scheduler struct {
	cron             *cron.Cron
	userRepo         domain.UserRepository
	recurringService *service.RecurringService
}

// New creates a new Scheduler
func New(userRepo domain.UserRepository, recurringService *service.RecurringService) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		userRepo:         userRepo,
		recurringService: recurringService,
	}
}

// Start registers the monthly job and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(generateSpec, s.runMonthlyGeneration); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("spec", generateSpec).Msg("Scheduler started")
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Scheduler stopped")
}

// runMonthlyGeneration generates the current month's entries for all users.
// One user failing does not stop the others.
func (s *Scheduler) runMonthlyGeneration() {
	target := domain.YearMonthOf(time.Now())
	log.Info().Str("month", target.String()).Msg("Starting monthly entry generation")

	userIDs, err := s.userRepo.ListIDs()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users for monthly generation")
		return
	}

	generated, failed := 0, 0
	for _, userID := range userIDs {
		result, err := s.recurringService.GenerateEntries(userID, target)
		if err != nil {
			failed++
			log.Error().Err(err).Str("user_id", userID.String()).Msg("Monthly generation failed for user")
			continue
		}
		generated += result.Generated
	}

	log.Info().
		Str("month", target.String()).
		Int("users", len(userIDs)).
		Int("generated", generated).
		Int("failed_users", failed).
		Msg("Monthly entry generation finished")
}
