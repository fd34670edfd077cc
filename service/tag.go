package service

import (
	"context"
	"strings"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
)

const duplicateTagMessage = "Tag with this name already exists"

type TagService struct {
	tags         TagStore
	customerTags CustomerTagStore
}

func NewTagService(tags TagStore, customerTags CustomerTagStore) *TagService {
	return &TagService{tags: tags, customerTags: customerTags}
}

func (s *TagService) Create(ctx context.Context, req models.CreateTagRequest) (*models.Tag, error) {
	tag := &models.Tag{
		ID:        models.NewID(),
		Name:      strings.TrimSpace(req.Name),
		Color:     req.Color,
		CreatedAt: now(),
	}
	if tag.Color == "" {
		tag.Color = models.DefaultTagColor
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, conflict(err, duplicateTagMessage)
	}
	return tag, nil
}

func (s *TagService) List(ctx context.Context, page utils.PageParams) (utils.Paginated[models.Tag], error) {
	tags, total, err := s.tags.List(ctx, page)
	if err != nil {
		return utils.Paginated[models.Tag]{}, err
	}
	return utils.NewPaginated(tags, total, page.Page, page.Limit), nil
}

func (s *TagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Tag")
	}
	return tag, nil
}

func (s *TagService) Update(ctx context.Context, id string, req models.UpdateTagRequest) (*models.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Tag")
	}
	if req.Name != nil {
		tag.Name = strings.TrimSpace(*req.Name)
	}
	setIf(&tag.Color, req.Color)

	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, conflict(notFound(err, "Tag"), duplicateTagMessage)
	}
	return tag, nil
}

// Delete removes the tag and unlinks it from every customer.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return notFound(err, "Tag")
	}
	return s.customerTags.DeleteByTag(ctx, id)
}
