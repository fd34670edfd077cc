package service

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
)

type NoteService struct {
	notes        NoteStore
	contacts     ContactStore
	deals        DealStore
	tasks        TaskStore
	interactions InteractionStore
}

func NewNoteService(notes NoteStore, contacts ContactStore, deals DealStore, tasks TaskStore, interactions InteractionStore) *NoteService {
	return &NoteService{notes: notes, contacts: contacts, deals: deals, tasks: tasks, interactions: interactions}
}

// resolveOwner checks the owner exists and returns the customer it belongs to.
func (s *NoteService) resolveOwner(ctx context.Context, owner models.NoteOwner) (string, error) {
	if err := owner.Validate(); err != nil {
		return "", utils.CreateBadRequestError(err.Error())
	}

	switch owner.Type {
	case models.OwnerContact:
		c, err := s.contacts.FindByID(ctx, owner.ID)
		if err != nil {
			return "", notFound(err, "Contact")
		}
		return c.CustomerID, nil
	case models.OwnerDeal:
		d, err := s.deals.FindByID(ctx, owner.ID)
		if err != nil {
			return "", notFound(err, "Deal")
		}
		return d.CustomerID, nil
	case models.OwnerTask:
		t, err := s.tasks.FindByID(ctx, owner.ID)
		if err != nil {
			return "", notFound(err, "Task")
		}
		return t.CustomerID, nil
	case models.OwnerInteraction:
		i, err := s.interactions.FindByID(ctx, owner.ID)
		if err != nil {
			return "", notFound(err, "Interaction")
		}
		return i.CustomerID, nil
	}
	return "", utils.CreateBadRequestError("unknown note owner type " + string(owner.Type))
}

func (s *NoteService) Create(ctx context.Context, req models.CreateNoteRequest, authorID string) (*models.Note, error) {
	customerID, err := s.resolveOwner(ctx, req.Owner)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		ID:         models.NewID(),
		Title:      req.Title,
		Content:    req.Content,
		IsPrivate:  req.IsPrivate,
		Tags:       req.Tags,
		Owner:      req.Owner,
		CustomerID: customerID,
		AuthorID:   authorID,
	}
	note.Touch(now())

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) List(ctx context.Context, f models.NoteFilter, page utils.PageParams) (utils.Paginated[models.Note], error) {
	if f.Owner != nil {
		if err := f.Owner.Validate(); err != nil {
			return utils.Paginated[models.Note]{}, utils.CreateBadRequestError(err.Error())
		}
	}
	f.Search = page.Search
	notes, total, err := s.notes.List(ctx, f, page)
	if err != nil {
		return utils.Paginated[models.Note]{}, err
	}
	return utils.NewPaginated(notes, total, page.Page, page.Limit), nil
}

// ListByOwner accepts the route form of the owner type ("deal" or "deals").
func (s *NoteService) ListByOwner(ctx context.Context, ownerType, ownerID string, page utils.PageParams) (utils.Paginated[models.Note], error) {
	ot, err := models.ParseOwnerType(ownerType)
	if err != nil {
		return utils.Paginated[models.Note]{}, utils.CreateBadRequestError(err.Error())
	}
	owner := models.NoteOwner{Type: ot, ID: ownerID}
	if _, err := s.resolveOwner(ctx, owner); err != nil {
		return utils.Paginated[models.Note]{}, err
	}
	return s.List(ctx, models.NoteFilter{Owner: &owner}, page)
}

func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Note")
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, id string, req models.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Note")
	}

	setIf(&note.Title, req.Title)
	setIf(&note.Content, req.Content)
	setIf(&note.IsPrivate, req.IsPrivate)
	setIf(&note.Tags, req.Tags)
	note.Touch(now())

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, notFound(err, "Note")
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	return notFound(s.notes.Delete(ctx, id), "Note")
}
