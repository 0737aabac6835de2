package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	generator    SlotGenerator
	catalogRepo  CatalogRepository
	metrics      Metrics
	policy       WindowPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	generator SlotGenerator,
	catalogRepo CatalogRepository,
	metrics Metrics,
	policy WindowPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		generator:    generator,
		catalogRepo:  catalogRepo,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, operator=%v, location=%v",
		req.ServiceID, req.OperatorID, req.LocationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование услуги
	if _, err := uc.catalogRepo.GetService(ctx, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Применяем ограничения окна
	w, err := resolveWindow(uc.policy, req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}
	uc.logger.Info("GetAvailableSlots: window %s - %s",
		w.from.Format(time.RFC3339), w.to.Format(time.RFC3339))

	// 4. Генерируем слоты
	startedAt := time.Now()
	result, err := uc.generator.Generate(ctx, slots.Query{
		Window:     w.window(),
		ServiceID:  &req.ServiceID,
		OperatorID: req.OperatorID,
		LocationID: req.LocationID,
		Options:    slots.DefaultOptions(),
	})
	if err != nil {
		if errors.Is(err, slots.ErrInvalidWindow) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	uc.metrics.ObserveSlotGeneration(result.Count(), time.Since(startedAt))

	// 5. Фильтры страницы: локации и операторы услуги, отфильтрованные друг по другу
	locations, err := uc.catalogRepo.ListLocationsForService(ctx, req.ServiceID, req.OperatorID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list locations: %v", err)
		return nil, fmt.Errorf("%w: failed to list locations: %v", ErrInternal, err)
	}

	operators, err := uc.catalogRepo.ListOperatorsForService(ctx, req.ServiceID, req.LocationID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list operators: %v", err)
		return nil, fmt.Errorf("%w: failed to list operators: %v", ErrInternal, err)
	}

	// 6. Страница: запрошенная дата (пустая, если на неё нет слотов), без неё первая доступная
	dates := result.Dates()
	resp := &Response{
		ServiceID:  req.ServiceID,
		From:       w.from,
		To:         w.to,
		DateList:   dates,
		Slots:      []domain.Slot{},
		Operators:  operators,
		Locations:  locations,
		PrevCursor: w.prevCursor(),
		NextCursor: w.nextCursor(),
	}

	switch {
	case req.PageDate != nil:
		page := domain.FormatDate(*req.PageDate)
		resp.PageDate = &page
		if daySlots := result[page]; len(daySlots) > 0 {
			resp.Slots = daySlots
		}
	case len(dates) > 0:
		page := dates[0]
		resp.PageDate = &page
		resp.Slots = result[page]
	}

	uc.logger.Info("GetAvailableSlots: service=%s, dates=%d, slots=%d",
		req.ServiceID, len(dates), result.Count())

	return resp, nil
}
