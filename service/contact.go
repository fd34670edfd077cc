package service

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
)

type ContactService struct {
	contacts  ContactStore
	customers CustomerStore
}

func NewContactService(contacts ContactStore, customers CustomerStore) *ContactService {
	return &ContactService{contacts: contacts, customers: customers}
}

func (s *ContactService) Create(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error) {
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		return nil, notFound(err, "Customer")
	}

	contact := &models.Contact{
		ID:         models.NewID(),
		CustomerID: req.CustomerID,
		Type:       req.Type,
		Value:      req.Value,
		Label:      req.Label,
		IsPrimary:  req.IsPrimary,
	}
	contact.Touch(now())

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	if contact.IsPrimary {
		if err := s.contacts.ClearPrimary(ctx, contact.CustomerID, contact.Type, contact.ID); err != nil {
			return nil, err
		}
	}
	return contact, nil
}

func (s *ContactService) List(ctx context.Context, f models.ContactFilter, page utils.PageParams) (utils.Paginated[models.Contact], error) {
	if page.Search != "" {
		f.Search = page.Search
	}
	contacts, total, err := s.contacts.List(ctx, f, page)
	if err != nil {
		return utils.Paginated[models.Contact]{}, err
	}
	return utils.NewPaginated(contacts, total, page.Page, page.Limit), nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Contact")
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Contact")
	}

	setIf(&contact.Type, req.Type)
	setIf(&contact.Value, req.Value)
	setIf(&contact.Label, req.Label)
	setIf(&contact.IsPrimary, req.IsPrimary)
	contact.Touch(now())

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, notFound(err, "Contact")
	}
	if contact.IsPrimary {
		if err := s.contacts.ClearPrimary(ctx, contact.CustomerID, contact.Type, contact.ID); err != nil {
			return nil, err
		}
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return notFound(s.contacts.Delete(ctx, id), "Contact")
}
