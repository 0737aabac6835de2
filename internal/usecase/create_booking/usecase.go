package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	ruleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	ruleRepo     RuleRepository
	bookingRepo  BookingRepository
	generator    SlotGenerator
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ruleRepo RuleRepository,
	bookingRepo BookingRepository,
	generator SlotGenerator,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		ruleRepo:     ruleRepo,
		bookingRepo:  bookingRepo,
		generator:    generator,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Правило блокируется на время транзакции, а уникальный индекс активных броней
// отсекает конкурентные записи на тот же слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: account=%s, rule=%s, date=%s, time=%s",
		req.AccountID, req.RuleID, req.Date.Format(domain.DateFormat), req.StartTime)

	resp, err := uc.execute(ctx, req)
	uc.metrics.IncBookingAttempt(attemptResult(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	date := domain.DateOf(req.Date)

	// 2. Дата в пределах горизонта записи
	if err := validateDate(date, uc.timeProvider.Now(), uc.policy); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	var (
		rule    *domain.AvailabilityRule
		created *domain.Booking
	)

	// 3. Проверки и вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Правило (строка блокируется до конца транзакции)
		var err error
		rule, err = uc.ruleRepo.GetByID(txCtx, req.RuleID)
		if err != nil {
			if errors.Is(err, ruleRepo.ErrRuleNotFound) {
				uc.logger.Warn("CreateBooking: rule id=%s not found", req.RuleID)
				return ErrRuleNotFound
			}
			uc.logger.Error("CreateBooking: failed to get rule id=%s: %v", req.RuleID, err)
			return fmt.Errorf("%w: failed to get rule: %v", ErrInternal, err)
		}
		if !rule.Enabled {
			uc.logger.Warn("CreateBooking: rule id=%s is disabled", req.RuleID)
			return ErrRuleNotFound
		}

		// 3.2. Слот должен лежать на сетке правила
		if err := validateRuleDate(rule, date); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}
		timeEnd, ok := slots.IsOnGrid(rule, req.StartTime)
		if !ok {
			uc.logger.Warn("CreateBooking: %s is not a slot start of rule id=%s", req.StartTime, rule.ID)
			return fmt.Errorf("%w: %s is not a slot start", ErrInvalidTimeSlot, req.StartTime)
		}

		// 3.3. Повторно считаем слоты правила на эту дату: закрытия, отсутствия и брони
		window := domain.NewWindow(date, date.AddDate(0, 0, 1))
		available, err := uc.generator.Generate(txCtx, slots.Query{
			Window:  window,
			RuleID:  &rule.ID,
			Options: slots.DefaultOptions(),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check slot availability: %v", err)
			return fmt.Errorf("%w: failed to check slot availability: %v", ErrInternal, err)
		}
		if !containsSlot(available[domain.FormatDate(date)], req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s %s of rule id=%s is not available",
				domain.FormatDate(date), req.StartTime, rule.ID)
			return ErrSlotNotAvailable
		}

		// 3.4. Сохраняем бронирование
		booking := &domain.Booking{
			AccountID:    req.AccountID,
			RuleID:       rule.ID,
			Date:         date,
			TimeStart:    req.StartTime,
			TimeEnd:      timeEnd,
			Notes:        req.Notes,
			ServiceName:  rule.ServiceName,
			LocationName: rule.LocationName,
			OperatorName: rule.OperatorName,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				uc.logger.Warn("CreateBooking: slot was taken concurrently: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	// 4. Уведомление не влияет на результат
	if err := uc.notifier.PublishBookingConfirmed(ctx, created); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish confirmation for booking id=%s: %v", created.ID, err)
	}

	return &Response{
		ID:              created.ID,
		AccountID:       created.AccountID,
		RuleID:          created.RuleID,
		ServiceID:       rule.ServiceID,
		LocationID:      rule.LocationID,
		OperatorID:      rule.OperatorID,
		Date:            created.Date,
		TimeStart:       created.TimeStart,
		TimeEnd:         created.TimeEnd,
		Notes:           created.Notes,
		ServiceName:     rule.ServiceName,
		LocationName:    rule.LocationName,
		LocationAddress: rule.LocationAddress,
		OperatorName:    rule.OperatorName,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}

func containsSlot(daySlots []domain.Slot, start types.TimeString) bool {
	for _, s := range daySlots {
		if s.TimeStart == start {
			return true
		}
	}
	return false
}

func attemptResult(err error) string {
	switch {
	case err == nil:
		return resultCreated
	case errors.Is(err, ErrSlotNotAvailable):
		return resultConflict
	case errors.Is(err, ErrInternal):
		return resultFailed
	default:
		return resultRejected
	}
}
