package slots

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

// Service движок генерации доступных слотов
// Не хранит состояние между вызовами, безопасен для конкурентного использования
type Service struct {
	ruleRepo    RuleRepository
	closureRepo ConflictRepository
	absenceRepo ConflictRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр движка
func NewService(
	ruleRepo RuleRepository,
	closureRepo ConflictRepository,
	absenceRepo ConflictRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:    ruleRepo,
		closureRepo: closureRepo,
		absenceRepo: absenceRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Generate возвращает доступные слоты, сгруппированные по дате
// Правила, закрытия, отсутствия и бронирования читаются параллельно один раз за вызов
// (последовательно, если в контексте есть транзакция)
func (s *Service) Generate(ctx context.Context, q Query) (domain.ResultSet, error) {
	// 1. Валидация окна
	if err := q.Window.Validate(); err != nil {
		s.logger.Warn("Generate: %v", err)
		return nil, err
	}

	// 2. Снимок данных
	snapshot, err := s.fetchSnapshot(ctx, q)
	if err != nil {
		s.logger.Error("Generate: failed to fetch snapshot: %v", err)
		return nil, err
	}

	if len(snapshot.Rules) == 0 {
		s.logger.Info("Generate: no enabled rules match the query")
		return domain.ResultSet{}, nil
	}

	s.logger.Debug("Generate: snapshot rules=%d, closures=%d, absences=%d, bookings=%d",
		len(snapshot.Rules), len(snapshot.Closures), len(snapshot.Absences), len(snapshot.Bookings))

	// 3. Развёртка, фильтрация и группировка
	result, excluded, err := computeWithExclusions(snapshot, q.Window, q.Options)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Generate: excluded window=%d, booking=%d, closure=%d, absence=%d",
		excluded[ReasonWindow], excluded[ReasonBooking], excluded[ReasonClosure], excluded[ReasonAbsence])

	s.logger.Info("Generate: %d slots on %d dates from %d rules",
		result.Count(), len(result), len(snapshot.Rules))

	return result, nil
}

func (s *Service) fetchSnapshot(ctx context.Context, q Query) (Snapshot, error) {
	var snapshot Snapshot
	fromDate, toDate := q.Window.FromDate(), q.Window.ToDate()

	g, gctx := errgroup.WithContext(ctx)
	// Транзакция держит одно соединение, запросы в ней идут по очереди
	if dbmetrics.IsInTransaction(ctx) {
		g.SetLimit(1)
	}

	g.Go(func() error {
		rules, err := s.ruleRepo.FindEnabled(gctx, domain.RuleFilter{
			ServiceID:  q.ServiceID,
			OperatorID: q.OperatorID,
			LocationID: q.LocationID,
			RuleID:     q.RuleID,
			FromDate:   fromDate,
			ToDate:     toDate,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetchRules, err)
		}
		snapshot.Rules = rules
		return nil
	})

	if q.Options.ExcludeClosures && s.closureRepo != nil {
		g.Go(func() error {
			closures, err := s.closureRepo.FindOverlapping(gctx, q.Window, q.LocationID)
			if err != nil {
				return fmt.Errorf("%w: closures: %v", ErrFetchConflicts, err)
			}
			snapshot.Closures = closures
			return nil
		})
	}

	if q.Options.ExcludeAbsences && s.absenceRepo != nil {
		g.Go(func() error {
			absences, err := s.absenceRepo.FindOverlapping(gctx, q.Window, q.OperatorID)
			if err != nil {
				return fmt.Errorf("%w: absences: %v", ErrFetchConflicts, err)
			}
			snapshot.Absences = absences
			return nil
		})
	}

	if q.Options.ExcludeBookings && s.bookingRepo != nil {
		g.Go(func() error {
			bookings, err := s.bookingRepo.FindActive(gctx, domain.BookingFilter{
				FromDate:   fromDate,
				ToDate:     toDate,
				RuleID:     q.RuleID,
				ServiceID:  q.ServiceID,
				OperatorID: q.OperatorID,
				LocationID: q.LocationID,
			})
			if err != nil {
				return fmt.Errorf("%w: %v", ErrFetchBookings, err)
			}
			snapshot.Bookings = bookings
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}
