package service

import (
	"context"
	"testing"

	"github.com/BerniceZTT/crm_api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteService(fx *fixture) *NoteService {
	return NewNoteService(fx.notes, fx.contacts, fx.deals, fx.tasks, fx.interactions)
}

func TestNoteCreateResolvesCustomer(t *testing.T) {
	fx := newFixture()
	svc := newNoteService(fx)
	ctx := context.Background()
	customer := fx.addCustomer("owner@example.com")
	deal := &models.Deal{ID: models.NewID(), CustomerID: customer.ID}
	require.NoError(t, fx.deals.Create(ctx, deal))

	note, err := svc.Create(ctx, models.CreateNoteRequest{
		Title:   "Call recap",
		Content: "Wants a discount",
		Owner:   models.NoteOwner{Type: models.OwnerDeal, ID: deal.ID},
	}, "author-1")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, note.CustomerID)
	assert.Equal(t, "author-1", note.AuthorID)

	page, err := svc.ListByOwner(ctx, "deals", deal.ID, firstPage)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, note.ID, page.Data[0].ID)
}

func TestNoteOwnerMustExist(t *testing.T) {
	fx := newFixture()
	svc := newNoteService(fx)
	ctx := context.Background()

	for _, ot := range models.OwnerTypes {
		_, err := svc.Create(ctx, models.CreateNoteRequest{
			Title: "t", Content: "c",
			Owner: models.NoteOwner{Type: ot, ID: models.NewID()},
		}, "a")
		requireStatus(t, err, statusNotFound)
	}

	_, err := svc.Create(ctx, models.CreateNoteRequest{
		Title: "t", Content: "c",
		Owner: models.NoteOwner{Type: "invoice", ID: models.NewID()},
	}, "a")
	requireStatus(t, err, statusBadReq)

	_, err = svc.ListByOwner(ctx, "customers", models.NewID(), firstPage)
	requireStatus(t, err, statusBadReq)
}

func TestNoteUpdateKeepsOwner(t *testing.T) {
	fx := newFixture()
	svc := newNoteService(fx)
	ctx := context.Background()
	contact := &models.Contact{ID: models.NewID(), CustomerID: models.NewID(), Type: models.ContactTypeEmail}
	require.NoError(t, fx.contacts.Create(ctx, contact))

	note, err := svc.Create(ctx, models.CreateNoteRequest{Title: "t", Content: "c", Owner: models.NoteOwner{Type: models.OwnerContact, ID: contact.ID}}, "a")
	require.NoError(t, err)

	private := true
	updated, err := svc.Update(ctx, note.ID, models.UpdateNoteRequest{IsPrivate: &private})
	require.NoError(t, err)
	assert.True(t, updated.IsPrivate)
	assert.Equal(t, "t", updated.Title)
	assert.Equal(t, note.Owner, updated.Owner)

	require.NoError(t, svc.Delete(ctx, note.ID))
	_, err = svc.Get(ctx, note.ID)
	requireStatus(t, err, statusNotFound)
}
