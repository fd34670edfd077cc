package routes

import (
	"context"
	"sync"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/repository"
	"github.com/BerniceZTT/crm_api/utils"
)

type auditLog struct {
	mu      sync.Mutex
	entries []models.ActivityLog
}

func (a *auditLog) Record(entry models.ActivityLog) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return true
}

// memCustomers only backs the lookups the deal service makes.
type memCustomers struct {
	byID map[string]*models.Customer
}

func (m *memCustomers) Create(_ context.Context, c *models.Customer) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCustomers) FindByID(_ context.Context, id string) (*models.Customer, error) {
	if c, ok := m.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memCustomers) FindByEmail(context.Context, string) (*models.Customer, error) {
	return nil, repository.ErrNotFound
}

func (m *memCustomers) Update(context.Context, *models.Customer) error { return nil }

func (m *memCustomers) SoftDelete(context.Context, string) error { return nil }

func (m *memCustomers) List(context.Context, models.CustomerFilter, utils.PageParams) ([]models.Customer, int64, error) {
	return nil, 0, nil
}

func (m *memCustomers) FindAll(context.Context, models.CustomerFilter) ([]models.Customer, error) {
	return nil, nil
}

func (m *memCustomers) StatusSummary(context.Context) ([]models.StatusSummary, error) {
	return nil, nil
}

type memDeals struct {
	mu    sync.Mutex
	deals []models.Deal
}

func (m *memDeals) Create(_ context.Context, d *models.Deal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deals = append(m.deals, *d)
	return nil
}

func (m *memDeals) FindByID(_ context.Context, id string) (*models.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.deals {
		if d.ID == id {
			cp := d
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memDeals) Update(_ context.Context, d *models.Deal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.deals {
		if m.deals[i].ID == d.ID {
			m.deals[i] = *d
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memDeals) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.deals {
		if m.deals[i].ID == id {
			m.deals = append(m.deals[:i], m.deals[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memDeals) List(_ context.Context, _ models.DealFilter, _ utils.PageParams) ([]models.Deal, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Deal(nil), m.deals...), int64(len(m.deals)), nil
}

func (m *memDeals) FindAll(_ context.Context, _ models.DealFilter) ([]models.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Deal(nil), m.deals...), nil
}

func (m *memDeals) CountByCustomers(context.Context, []string) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (m *memDeals) StageTotals(_ context.Context, _ models.DealFilter) ([]models.StageBucket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStage := map[models.DealStage]*models.StageBucket{}
	var buckets []models.StageBucket
	order := []models.DealStage{}
	for _, d := range m.deals {
		b, ok := byStage[d.Stage]
		if !ok {
			b = &models.StageBucket{Stage: d.Stage}
			byStage[d.Stage] = b
			order = append(order, d.Stage)
		}
		b.Count++
		b.TotalValue += d.Value
	}
	for _, st := range order {
		b := byStage[st]
		b.AverageValue = b.TotalValue / float64(b.Count)
		buckets = append(buckets, *b)
	}
	return buckets, nil
}
