package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for account=%s", id, requesterID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.AccountID != requesterID {
		s.logger.Warn("GetByID: access denied for account=%s to booking id=%s", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetAccountBookings получает историю бронирований пользователя
// Пользователь может запросить только свои бронирования
func (s *Service) GetAccountBookings(ctx context.Context, req *models.GetAccountBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetAccountBookings: fetching bookings for account=%s, includeRejected=%t",
		req.AccountID, req.IncludeRejected)

	if req.AccountID == uuid.Nil {
		return nil, fmt.Errorf("%w: accountID is required", ErrInvalidInput)
	}

	if req.AccountID != req.RequesterID {
		s.logger.Warn("GetAccountBookings: access denied for account=%s to bookings of account=%s",
			req.RequesterID, req.AccountID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByAccountID(ctx, req.AccountID, req.IncludeRejected)
	if err != nil {
		s.logger.Error("GetAccountBookings: repository error for account=%s: %v", req.AccountID, err)
		return nil, fmt.Errorf("%w: GetAccountBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAccountBookings: successfully fetched %d bookings for account=%s", len(bookings), req.AccountID)
	return models.FromDomainBookingList(bookings), nil
}

// Reject отклоняет бронирование и освобождает слот
// Отклонить может только владелец, повторное отклонение возвращает ErrAlreadyRejected
func (s *Service) Reject(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("Reject: rejecting booking id=%s by account=%s", id, requesterID)

	var rejected *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование (строка блокируется до конца транзакции)
		booking, err := s.getBooking(txCtx, "Reject", id)
		if err != nil {
			return err
		}

		// 2. Проверяем права и состояние
		if booking.AccountID != requesterID {
			s.logger.Warn("Reject: access denied for account=%s to booking id=%s", requesterID, id)
			return ErrAccessDenied
		}

		if !booking.CanBeRejected() {
			s.logger.Warn("Reject: booking id=%s is already rejected", id)
			return ErrAlreadyRejected
		}

		// 3. Отклоняем
		if err := s.bookingRepo.Reject(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrAlreadyRejected) {
				return ErrAlreadyRejected
			}
			s.logger.Error("Reject: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
		}

		// 4. Перечитываем, чтобы вернуть время отклонения
		rejected, err = s.getBooking(txCtx, "Reject", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reject: successfully rejected booking id=%s", id)

	if err := s.notifier.PublishBookingRejected(ctx, rejected); err != nil {
		s.logger.Warn("Reject: failed to publish rejection for booking id=%s: %v", id, err)
	}

	return models.FromDomainBooking(rejected), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
