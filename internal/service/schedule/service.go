package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
	conflictRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/conflict"
	ruleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// Service сервис управления расписанием: правила доступности, закрытия локаций, отсутствия операторов
type Service struct {
	ruleRepo    RuleRepository
	closureRepo IntervalRepository
	absenceRepo IntervalRepository
	catalogRepo CatalogRepository
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса расписания
// location - часовой пояс, в который переводятся моменты с явной зоной
func NewService(
	ruleRepo RuleRepository,
	closureRepo IntervalRepository,
	absenceRepo IntervalRepository,
	catalogRepo CatalogRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		ruleRepo:    ruleRepo,
		closureRepo: closureRepo,
		absenceRepo: absenceRepo,
		catalogRepo: catalogRepo,
		location:    location,
		logger:      logger,
	}
}

// CreateRule создает новое правило доступности
// Проверяет инварианты правила и существование услуги
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("CreateRule: creating rule for service=%s, location=%s, operator=%s, weekday=%d",
		req.ServiceID, req.LocationID, req.OperatorID, req.Weekday)

	// 1. Разбираем и валидируем входные данные
	rule, err := req.ToDomainRule()
	if err != nil {
		s.logger.Warn("CreateRule: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := rule.Validate(); err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем существование услуги
	if _, err := s.catalogRepo.GetService(ctx, rule.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("CreateRule: service id=%s not found", rule.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("CreateRule: failed to get service id=%s: %v", rule.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Создаем правило, локацию и оператора проверяет внешний ключ
	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrReferenceNotFound) {
			s.logger.Warn("CreateRule: location=%s or operator=%s not found", rule.LocationID, rule.OperatorID)
			return nil, ErrReferenceNotFound
		}
		s.logger.Error("CreateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: successfully created rule id=%s", created.ID)
	return models.FromDomainRule(created), nil
}

// GetRule получает правило по ID
func (s *Service) GetRule(ctx context.Context, id uuid.UUID) (*models.RuleResponse, error) {
	rule, err := s.getRule(ctx, "GetRule", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRule(rule), nil
}

// SetRuleEnabled включает или выключает правило
// Выключенное правило не порождает слотов, существующие бронирования остаются
func (s *Service) SetRuleEnabled(ctx context.Context, id uuid.UUID, req *models.SetRuleEnabledRequest) (*models.RuleResponse, error) {
	s.logger.Info("SetRuleEnabled: setting enabled=%t for rule id=%s", req.Enabled, id)

	if err := s.ruleRepo.SetEnabled(ctx, id, req.Enabled); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("SetRuleEnabled: rule id=%s not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("SetRuleEnabled: repository error for rule id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SetRuleEnabled - repository error: %v", ErrInternal, err)
	}

	rule, err := s.getRule(ctx, "SetRuleEnabled", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetRuleEnabled: rule id=%s enabled=%t", id, rule.Enabled)
	return models.FromDomainRule(rule), nil
}

// ListServiceRules получает все правила услуги, включая выключенные
func (s *Service) ListServiceRules(ctx context.Context, serviceID uuid.UUID) (*models.RuleListResponse, error) {
	s.logger.Info("ListServiceRules: fetching rules for service=%s", serviceID)

	if _, err := s.catalogRepo.GetService(ctx, serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("ListServiceRules: service id=%s not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("ListServiceRules: failed to get service id=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	rules, err := s.ruleRepo.ListByService(ctx, serviceID)
	if err != nil {
		s.logger.Error("ListServiceRules: repository error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListServiceRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServiceRules: successfully fetched %d rules for service=%s", len(rules), serviceID)
	return models.FromDomainRuleList(rules), nil
}

// CreateClosure закрывает локацию на интервал [startAt, endAt)
func (s *Service) CreateClosure(ctx context.Context, req *models.CreateClosureRequest) (*models.IntervalResponse, error) {
	s.logger.Info("CreateClosure: closing location=%s from %s to %s", req.LocationID, req.StartAt, req.EndAt)

	return s.createInterval(ctx, "CreateClosure", s.closureRepo, domain.ConflictClosure,
		req.LocationID, req.StartAt, req.EndAt, req.Reason)
}

// CreateAbsence отмечает отсутствие оператора на интервал [startAt, endAt)
func (s *Service) CreateAbsence(ctx context.Context, req *models.CreateAbsenceRequest) (*models.IntervalResponse, error) {
	s.logger.Info("CreateAbsence: operator=%s absent from %s to %s", req.OperatorID, req.StartAt, req.EndAt)

	return s.createInterval(ctx, "CreateAbsence", s.absenceRepo, domain.ConflictAbsence,
		req.OperatorID, req.StartAt, req.EndAt, req.Reason)
}

func (s *Service) createInterval(
	ctx context.Context,
	op string,
	repo IntervalRepository,
	kind domain.ConflictKind,
	scopeID uuid.UUID,
	startAt, endAt string,
	reason *string,
) (*models.IntervalResponse, error) {
	// 1. Валидируем входные данные
	if scopeID == uuid.Nil {
		s.logger.Warn("%s: empty scope id", op)
		return nil, fmt.Errorf("%w: scope id is required", ErrInvalidInput)
	}

	start, err := domain.ParseDateTime(startAt, s.location)
	if err != nil {
		s.logger.Warn("%s: invalid startAt: %v", op, err)
		return nil, fmt.Errorf("%w: startAt: %v", ErrInvalidInput, err)
	}
	end, err := domain.ParseDateTime(endAt, s.location)
	if err != nil {
		s.logger.Warn("%s: invalid endAt: %v", op, err)
		return nil, fmt.Errorf("%w: endAt: %v", ErrInvalidInput, err)
	}

	interval := &domain.ConflictInterval{
		Kind:    kind,
		ScopeID: scopeID,
		Start:   start,
		End:     end,
		Reason:  reason,
	}
	if err := interval.Validate(); err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Сохраняем интервал
	created, err := repo.Create(ctx, interval)
	if err != nil {
		switch {
		case errors.Is(err, conflictRepo.ErrScopeNotFound):
			s.logger.Warn("%s: scope id=%s not found", op, scopeID)
			return nil, ErrReferenceNotFound
		case errors.Is(err, conflictRepo.ErrInvalidInterval):
			s.logger.Warn("%s: interval rejected by storage: %v", op, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			s.logger.Error("%s: repository error: %v", op, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}

	s.logger.Info("%s: successfully created %s id=%s", op, kind, created.ID)
	return models.FromDomainInterval(created), nil
}

func (s *Service) getRule(ctx context.Context, op string, id uuid.UUID) (*domain.AvailabilityRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("%s: rule id=%s not found", op, id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("%s: repository error for rule id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return rule, nil
}
