package services

import (
	"context"
	"fmt"
	"time"

	"github.com/creostudios/studiosvc/domain"
)

// ApplicationServiceImpl implements domain.ApplicationService
type ApplicationServiceImpl struct {
	appRepo domain.ApplicationRepository
	audit   domain.AuditLogger
}

// NewApplicationService creates a new application service
func NewApplicationService(appRepo domain.ApplicationRepository, audit domain.AuditLogger) domain.ApplicationService {
	return &ApplicationServiceImpl{
		appRepo: appRepo,
		audit:   audit,
	}
}

// Submit implements domain.ApplicationService. Every application starts
// pending; the status field on the input is ignored.
func (s *ApplicationServiceImpl) Submit(ctx context.Context, app *domain.Application) error {
	if err := app.Validate(); err != nil {
		return err
	}

	app.Status = domain.StatusPending
	app.Delivery = domain.DeliveryPayload{}
	app.DeliveredAt = nil

	if err := s.appRepo.Create(ctx, app); err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.ApplicationSubmittedEvent).
		WithMetadata("application_id", app.ID).
		WithMetadata("service_type", app.ServiceType))

	return nil
}

// ListOwn implements domain.ApplicationService
func (s *ApplicationServiceImpl) ListOwn(ctx context.Context, email string) ([]domain.Application, error) {
	return s.appRepo.ListByUserEmail(ctx, email)
}

// ListAll implements domain.ApplicationService
func (s *ApplicationServiceImpl) ListAll(ctx context.Context) ([]domain.Application, error) {
	return s.appRepo.ListAll(ctx)
}

// Transition implements domain.ApplicationService. The step is checked
// against the workflow before anything is written, so an illegal request
// leaves the record untouched.
func (s *ApplicationServiceImpl) Transition(ctx context.Context, id uint, target domain.Status) (*domain.Application, error) {
	if !target.Valid() {
		return nil, domain.ErrUnknownStatus
	}

	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !app.Status.CanTransition(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, app.Status, target)
	}

	if err := s.appRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.StatusTransitionEvent).
		WithMetadata("application_id", id).
		WithMetadata("from", string(app.Status)).
		WithMetadata("to", string(target)))

	app.Status = target
	return app, nil
}

// Deliver implements domain.ApplicationService. Delivery attaches the final
// handoff and completes the application in one step; it is only legal from
// the accepted state.
func (s *ApplicationServiceImpl) Deliver(ctx context.Context, id uint, payload domain.DeliveryPayload) (*domain.Application, error) {
	if payload.Empty() {
		return nil, domain.ErrEmptyDelivery
	}

	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !app.Status.CanTransition(domain.StatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, app.Status, domain.StatusCompleted)
	}

	deliveredAt := time.Now()
	if err := s.appRepo.SaveDelivery(ctx, id, payload, deliveredAt); err != nil {
		return nil, fmt.Errorf("failed to save delivery: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.ApplicationDeliveredEvent).
		WithMetadata("application_id", id))

	app.Status = domain.StatusCompleted
	app.Delivery = payload
	app.DeliveredAt = &deliveredAt
	return app, nil
}
