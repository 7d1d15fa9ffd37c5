package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
)

type contactService struct {
	BaseService
	contactRepo portsrepo.ContactRepository
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo portsrepo.ContactRepository) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: contactRepo}
}

// Ensure contactService implements the portssvc.ContactSvcFacade interface
var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest, actorID string) (*domain.Contact, error) {
	now := time.Now().UTC()
	contact := domain.Contact{
		ContactID: uuid.NewString(),
		Name:      req.Name,
		Type:      req.Type,
		Phone:     req.Phone,
		Email:     req.Email,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		s.LogError(ctx, err, "Failed to save contact", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	s.LogInfo(ctx, "Contact created", slog.String("contact_id", contact.ContactID), slog.String("type", string(contact.Type)))
	return &contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("contact %s: %w", contactID, err)
	}
	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context, contactType *domain.ContactType, includeInactive bool) ([]domain.Contact, error) {
	contacts, err := s.contactRepo.ListContacts(ctx, contactType, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *contactService) DeactivateContact(ctx context.Context, contactID string, actorID string) error {
	if err := s.contactRepo.SetContactActive(ctx, contactID, false, actorID); err != nil {
		return fmt.Errorf("failed to deactivate contact %s: %w", contactID, err)
	}
	s.LogInfo(ctx, "Contact deactivated", slog.String("contact_id", contactID))
	return nil
}
