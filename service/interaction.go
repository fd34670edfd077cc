package service

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
)

type InteractionService struct {
	interactions InteractionStore
	customers    CustomerStore
	deals        DealStore
}

func NewInteractionService(interactions InteractionStore, customers CustomerStore, deals DealStore) *InteractionService {
	return &InteractionService{interactions: interactions, customers: customers, deals: deals}
}

func (s *InteractionService) Create(ctx context.Context, req models.CreateInteractionRequest, callerID string) (*models.Interaction, error) {
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		return nil, notFound(err, "Customer")
	}
	if req.DealID != "" {
		if _, err := s.deals.FindByID(ctx, req.DealID); err != nil {
			return nil, notFound(err, "Deal")
		}
	}

	interaction := &models.Interaction{
		ID:          models.NewID(),
		Type:        req.Type,
		Direction:   req.Direction,
		Subject:     req.Subject,
		Content:     req.Content,
		Completed:   req.Completed,
		ScheduledAt: req.ScheduledAt,
		CustomerID:  req.CustomerID,
		DealID:      req.DealID,
		UserID:      callerID,
	}
	interaction.Touch(now())
	if interaction.Completed {
		t := now()
		interaction.CompletedAt = &t
	}

	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, err
	}
	return interaction, nil
}

func (s *InteractionService) List(ctx context.Context, f models.InteractionFilter, page utils.PageParams) (utils.Paginated[models.Interaction], error) {
	f.Search = page.Search
	items, total, err := s.interactions.List(ctx, f, page)
	if err != nil {
		return utils.Paginated[models.Interaction]{}, err
	}
	return utils.NewPaginated(items, total, page.Page, page.Limit), nil
}

func (s *InteractionService) Get(ctx context.Context, id string) (*models.Interaction, error) {
	interaction, err := s.interactions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Interaction")
	}
	return interaction, nil
}

func (s *InteractionService) Update(ctx context.Context, id string, req models.UpdateInteractionRequest) (*models.Interaction, error) {
	interaction, err := s.interactions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Interaction")
	}
	if req.DealID != nil && *req.DealID != "" {
		if _, err := s.deals.FindByID(ctx, *req.DealID); err != nil {
			return nil, notFound(err, "Deal")
		}
	}

	setIf(&interaction.Type, req.Type)
	setIf(&interaction.Direction, req.Direction)
	setIf(&interaction.Subject, req.Subject)
	setIf(&interaction.Content, req.Content)
	setIf(&interaction.Completed, req.Completed)
	setIf(&interaction.DealID, req.DealID)
	if req.ScheduledAt != nil {
		interaction.ScheduledAt = req.ScheduledAt
	}
	switch {
	case interaction.Completed && interaction.CompletedAt == nil:
		t := now()
		interaction.CompletedAt = &t
	case !interaction.Completed:
		interaction.CompletedAt = nil
	}
	interaction.Touch(now())

	if err := s.interactions.Update(ctx, interaction); err != nil {
		return nil, notFound(err, "Interaction")
	}
	return interaction, nil
}

func (s *InteractionService) Complete(ctx context.Context, id string) (*models.Interaction, error) {
	done := true
	return s.Update(ctx, id, models.UpdateInteractionRequest{Completed: &done})
}

func (s *InteractionService) Delete(ctx context.Context, id string) error {
	return notFound(s.interactions.Delete(ctx, id), "Interaction")
}
