package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/repository"
	"github.com/BerniceZTT/crm_api/utils"
	"github.com/BerniceZTT/crm_api/worker"
)

// table is a tiny in-memory collection keyed by id, preserving insert order.
type table[T any] struct {
	mu   sync.Mutex
	rows []T
	id   func(*T) string
}

func newTable[T any](id func(*T) string) *table[T] {
	return &table[T]{id: id}
}

func (t *table[T]) insert(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if t.id(&t.rows[i]) == t.id(v) {
			return repository.ErrDuplicate
		}
	}
	t.rows = append(t.rows, *v)
	return nil
}

func (t *table[T]) get(id string) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if t.id(&t.rows[i]) == id {
			v := t.rows[i]
			return &v, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (t *table[T]) replace(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if t.id(&t.rows[i]) == t.id(v) {
			t.rows[i] = *v
			return nil
		}
	}
	return repository.ErrNotFound
}

func (t *table[T]) delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if t.id(&t.rows[i]) == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (t *table[T]) where(match func(*T) bool) []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]T, 0)
	for i := range t.rows {
		if match(&t.rows[i]) {
			out = append(out, t.rows[i])
		}
	}
	return out
}

func (t *table[T]) page(match func(*T) bool, p utils.PageParams) ([]T, int64) {
	all := t.where(match)
	start := int(p.Skip())
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all))
}

func (t *table[T]) countBy(match func(*T) bool, key func(*T) string) map[string]int64 {
	out := map[string]int64{}
	for _, v := range t.where(match) {
		out[key(&v)]++
	}
	return out
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func in(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// users

type fakeUsers struct{ *table[models.User] }

func newFakeUsers() *fakeUsers {
	return &fakeUsers{newTable(func(u *models.User) string { return u.ID })}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	if _, err := f.FindByEmail(context.Background(), u.Email); err == nil {
		return repository.ErrDuplicate
	}
	return f.insert(u)
}
func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) { return f.get(id) }
func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	rows := f.where(func(u *models.User) bool { return u.Email == email })
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}
func (f *fakeUsers) Update(_ context.Context, u *models.User) error { return f.replace(u) }
func (f *fakeUsers) Delete(_ context.Context, id string) error      { return f.delete(id) }
func (f *fakeUsers) TouchLogin(_ context.Context, id string, at time.Time) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.LastLoginAt = &at
	return f.replace(u)
}
func (f *fakeUsers) List(_ context.Context, fl models.UserFilter, p utils.PageParams) ([]models.User, int64, error) {
	rows, total := f.page(func(u *models.User) bool {
		return (fl.Role == "" || u.Role == fl.Role) && (fl.Search == "" || contains(u.Email+u.FirstName+u.LastName, fl.Search))
	}, p)
	return rows, total, nil
}
func (f *fakeUsers) FindByIDs(_ context.Context, ids []string) ([]models.User, error) {
	return f.where(func(u *models.User) bool { return in(ids, u.ID) }), nil
}

// customers

type fakeCustomers struct {
	*table[models.Customer]
	links *fakeCustomerTags
}

func newFakeCustomers(links *fakeCustomerTags) *fakeCustomers {
	return &fakeCustomers{table: newTable(func(c *models.Customer) string { return c.ID }), links: links}
}

func (f *fakeCustomers) Create(_ context.Context, c *models.Customer) error {
	if len(f.where(func(x *models.Customer) bool { return x.Email == c.Email })) > 0 {
		return repository.ErrDuplicate
	}
	return f.insert(c)
}
func (f *fakeCustomers) FindByID(_ context.Context, id string) (*models.Customer, error) {
	return f.get(id)
}
func (f *fakeCustomers) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	rows := f.where(func(c *models.Customer) bool { return c.Email == email })
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}
func (f *fakeCustomers) Update(_ context.Context, c *models.Customer) error { return f.replace(c) }
func (f *fakeCustomers) SoftDelete(_ context.Context, id string) error {
	c, err := f.get(id)
	if err != nil {
		return err
	}
	c.IsActive = false
	return f.replace(c)
}
func (f *fakeCustomers) match(fl models.CustomerFilter) func(*models.Customer) bool {
	var tagged []string
	if len(fl.TagIDs) > 0 {
		tagged, _ = f.links.CustomerIDsWithAnyTag(context.Background(), fl.TagIDs)
	}
	return func(c *models.Customer) bool {
		switch {
		case !fl.IncludeAll && !c.IsActive:
			return false
		case fl.Status != "" && c.Status != fl.Status:
			return false
		case fl.AssignedUserID != "" && c.AssignedUserID != fl.AssignedUserID:
			return false
		case fl.Search != "" && !contains(c.FirstName+" "+c.LastName+" "+c.Email+" "+c.Company, fl.Search):
			return false
		case len(fl.TagIDs) > 0 && !in(tagged, c.ID):
			return false
		case fl.MinLifetime != nil && c.LifetimeValue < *fl.MinLifetime:
			return false
		case !fl.CreatedAfter.IsZero() && c.CreatedAt.Before(fl.CreatedAfter):
			return false
		}
		return true
	}
}
func (f *fakeCustomers) List(_ context.Context, fl models.CustomerFilter, p utils.PageParams) ([]models.Customer, int64, error) {
	rows, total := f.page(f.match(fl), p)
	return rows, total, nil
}
func (f *fakeCustomers) FindAll(_ context.Context, fl models.CustomerFilter) ([]models.Customer, error) {
	return f.where(f.match(fl)), nil
}
func (f *fakeCustomers) StatusSummary(_ context.Context) ([]models.StatusSummary, error) {
	byStatus := map[models.CustomerStatus]*models.StatusSummary{}
	for _, c := range f.where(func(c *models.Customer) bool { return c.IsActive }) {
		s, ok := byStatus[c.Status]
		if !ok {
			s = &models.StatusSummary{Status: c.Status}
			byStatus[c.Status] = s
		}
		s.AverageScore = (s.AverageScore*float64(s.Count) + float64(c.Score)) / float64(s.Count+1)
		s.Count++
		s.TotalLifetimeValue += c.LifetimeValue
	}
	out := make([]models.StatusSummary, 0, len(byStatus))
	for _, s := range byStatus {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

// customer tags

type fakeCustomerTags struct{ *table[models.CustomerTag] }

func newFakeCustomerTags() *fakeCustomerTags {
	return &fakeCustomerTags{newTable(func(l *models.CustomerTag) string { return l.ID })}
}

func (f *fakeCustomerTags) Add(_ context.Context, customerID, tagID string) (*models.CustomerTag, error) {
	rows := f.where(func(l *models.CustomerTag) bool { return l.CustomerID == customerID && l.TagID == tagID })
	if len(rows) > 0 {
		return &rows[0], nil
	}
	link := &models.CustomerTag{ID: models.NewID(), CustomerID: customerID, TagID: tagID, CreatedAt: time.Now()}
	return link, f.insert(link)
}
func (f *fakeCustomerTags) Remove(_ context.Context, customerID, tagID string) error {
	rows := f.where(func(l *models.CustomerTag) bool { return l.CustomerID == customerID && l.TagID == tagID })
	if len(rows) == 0 {
		return repository.ErrNotFound
	}
	return f.delete(rows[0].ID)
}
func (f *fakeCustomerTags) Replace(ctx context.Context, customerID string, tagIDs []string) error {
	for _, l := range f.where(func(l *models.CustomerTag) bool { return l.CustomerID == customerID && !in(tagIDs, l.TagID) }) {
		_ = f.delete(l.ID)
	}
	for _, id := range tagIDs {
		if _, err := f.Add(ctx, customerID, id); err != nil {
			return err
		}
	}
	return nil
}
func (f *fakeCustomerTags) TagIDsByCustomer(_ context.Context, customerIDs []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, l := range f.where(func(l *models.CustomerTag) bool { return in(customerIDs, l.CustomerID) }) {
		out[l.CustomerID] = append(out[l.CustomerID], l.TagID)
	}
	return out, nil
}
func (f *fakeCustomerTags) CustomerIDsWithAnyTag(_ context.Context, tagIDs []string) ([]string, error) {
	ids := []string{}
	for _, l := range f.where(func(l *models.CustomerTag) bool { return in(tagIDs, l.TagID) }) {
		if !in(ids, l.CustomerID) {
			ids = append(ids, l.CustomerID)
		}
	}
	return ids, nil
}
func (f *fakeCustomerTags) DeleteByTag(_ context.Context, tagID string) error {
	for _, l := range f.where(func(l *models.CustomerTag) bool { return l.TagID == tagID }) {
		_ = f.delete(l.ID)
	}
	return nil
}

// tags

type fakeTags struct{ *table[models.Tag] }

func newFakeTags() *fakeTags {
	return &fakeTags{newTable(func(t *models.Tag) string { return t.ID })}
}

func (f *fakeTags) byName(name string) []models.Tag {
	return f.where(func(t *models.Tag) bool { return t.Name == name })
}
func (f *fakeTags) Create(_ context.Context, t *models.Tag) error {
	if len(f.byName(t.Name)) > 0 {
		return repository.ErrDuplicate
	}
	return f.insert(t)
}
func (f *fakeTags) FindByID(_ context.Context, id string) (*models.Tag, error) { return f.get(id) }
func (f *fakeTags) FindByIDs(_ context.Context, ids []string) ([]models.Tag, error) {
	return f.where(func(t *models.Tag) bool { return in(ids, t.ID) }), nil
}
func (f *fakeTags) FindOrCreateByName(_ context.Context, name string) (*models.Tag, error) {
	if rows := f.byName(name); len(rows) > 0 {
		return &rows[0], nil
	}
	t := &models.Tag{ID: models.NewID(), Name: name, Color: models.DefaultTagColor, CreatedAt: time.Now()}
	return t, f.insert(t)
}
func (f *fakeTags) Update(_ context.Context, t *models.Tag) error {
	for _, other := range f.byName(t.Name) {
		if other.ID != t.ID {
			return repository.ErrDuplicate
		}
	}
	return f.replace(t)
}
func (f *fakeTags) Delete(_ context.Context, id string) error { return f.delete(id) }
func (f *fakeTags) List(_ context.Context, p utils.PageParams) ([]models.Tag, int64, error) {
	rows, total := f.page(func(t *models.Tag) bool { return p.Search == "" || contains(t.Name, p.Search) }, p)
	return rows, total, nil
}

// contacts

type fakeContacts struct{ *table[models.Contact] }

func newFakeContacts() *fakeContacts {
	return &fakeContacts{newTable(func(c *models.Contact) string { return c.ID })}
}

func (f *fakeContacts) match(fl models.ContactFilter) func(*models.Contact) bool {
	return func(c *models.Contact) bool {
		return (fl.CustomerID == "" || c.CustomerID == fl.CustomerID) &&
			(fl.Type == "" || c.Type == fl.Type) &&
			(fl.Search == "" || contains(c.Value+" "+c.Label, fl.Search))
	}
}
func (f *fakeContacts) Create(_ context.Context, c *models.Contact) error          { return f.insert(c) }
func (f *fakeContacts) FindByID(_ context.Context, id string) (*models.Contact, error) { return f.get(id) }
func (f *fakeContacts) Update(_ context.Context, c *models.Contact) error          { return f.replace(c) }
func (f *fakeContacts) Delete(_ context.Context, id string) error                  { return f.delete(id) }
func (f *fakeContacts) List(_ context.Context, fl models.ContactFilter, p utils.PageParams) ([]models.Contact, int64, error) {
	rows, total := f.page(f.match(fl), p)
	return rows, total, nil
}
func (f *fakeContacts) FindAll(_ context.Context, fl models.ContactFilter) ([]models.Contact, error) {
	return f.where(f.match(fl)), nil
}
func (f *fakeContacts) ClearPrimary(_ context.Context, customerID string, typ models.ContactType, exceptID string) error {
	for _, c := range f.where(func(c *models.Contact) bool {
		return c.CustomerID == customerID && c.Type == typ && c.ID != exceptID && c.IsPrimary
	}) {
		c.IsPrimary = false
		_ = f.replace(&c)
	}
	return nil
}
func (f *fakeContacts) CountByCustomers(_ context.Context, ids []string) (map[string]int64, error) {
	return f.countBy(func(c *models.Contact) bool { return in(ids, c.CustomerID) }, func(c *models.Contact) string { return c.CustomerID }), nil
}

// deals

type fakeDeals struct{ *table[models.Deal] }

func newFakeDeals() *fakeDeals {
	return &fakeDeals{newTable(func(d *models.Deal) string { return d.ID })}
}

func (f *fakeDeals) match(fl models.DealFilter) func(*models.Deal) bool {
	return func(d *models.Deal) bool {
		return (fl.Stage == "" || d.Stage == fl.Stage) &&
			(fl.CustomerID == "" || d.CustomerID == fl.CustomerID) &&
			(fl.AssignedUserID == "" || d.AssignedUserID == fl.AssignedUserID) &&
			(fl.Search == "" || contains(d.Title+" "+d.Description, fl.Search))
	}
}
func (f *fakeDeals) Create(_ context.Context, d *models.Deal) error          { return f.insert(d) }
func (f *fakeDeals) FindByID(_ context.Context, id string) (*models.Deal, error) { return f.get(id) }
func (f *fakeDeals) Update(_ context.Context, d *models.Deal) error          { return f.replace(d) }
func (f *fakeDeals) Delete(_ context.Context, id string) error               { return f.delete(id) }
func (f *fakeDeals) List(_ context.Context, fl models.DealFilter, p utils.PageParams) ([]models.Deal, int64, error) {
	rows, total := f.page(f.match(fl), p)
	return rows, total, nil
}
func (f *fakeDeals) FindAll(_ context.Context, fl models.DealFilter) ([]models.Deal, error) {
	return f.where(f.match(fl)), nil
}
func (f *fakeDeals) CountByCustomers(_ context.Context, ids []string) (map[string]int64, error) {
	return f.countBy(func(d *models.Deal) bool { return in(ids, d.CustomerID) }, func(d *models.Deal) string { return d.CustomerID }), nil
}
func (f *fakeDeals) StageTotals(_ context.Context, fl models.DealFilter) ([]models.StageBucket, error) {
	byStage := map[models.DealStage]*models.StageBucket{}
	for _, d := range f.where(f.match(fl)) {
		b, ok := byStage[d.Stage]
		if !ok {
			b = &models.StageBucket{Stage: d.Stage}
			byStage[d.Stage] = b
		}
		b.Count++
		b.TotalValue += d.Value
		b.AverageValue = b.TotalValue / float64(b.Count)
	}
	out := make([]models.StageBucket, 0, len(byStage))
	for _, b := range byStage {
		out = append(out, *b)
	}
	return out, nil
}

// tasks

type fakeTasks struct{ *table[models.Task] }

func newFakeTasks() *fakeTasks {
	return &fakeTasks{newTable(func(t *models.Task) string { return t.ID })}
}

func (f *fakeTasks) match(fl models.TaskFilter) func(*models.Task) bool {
	return func(t *models.Task) bool {
		if fl.Status != "" && t.Status != fl.Status {
			return false
		}
		if fl.Status == "" && fl.OpenOnly && (t.Status == models.TaskStatusCOMPLETED || t.Status == models.TaskStatusCANCELLED) {
			return false
		}
		if fl.CustomerID != "" && t.CustomerID != fl.CustomerID {
			return false
		}
		if fl.DealID != "" && t.DealID != fl.DealID {
			return false
		}
		if fl.AssignedUserID != "" && t.AssignedUserID != fl.AssignedUserID {
			return false
		}
		if !fl.Due.From.IsZero() || !fl.Due.To.IsZero() {
			if t.DueDate == nil {
				return false
			}
			if !fl.Due.From.IsZero() && t.DueDate.Before(fl.Due.From) {
				return false
			}
			if !fl.Due.To.IsZero() && !t.DueDate.Before(fl.Due.To) {
				return false
			}
		}
		return true
	}
}
func (f *fakeTasks) Create(_ context.Context, t *models.Task) error          { return f.insert(t) }
func (f *fakeTasks) FindByID(_ context.Context, id string) (*models.Task, error) { return f.get(id) }
func (f *fakeTasks) Update(_ context.Context, t *models.Task) error          { return f.replace(t) }
func (f *fakeTasks) Delete(_ context.Context, id string) error               { return f.delete(id) }
func (f *fakeTasks) List(_ context.Context, fl models.TaskFilter, p utils.PageParams) ([]models.Task, int64, error) {
	rows, total := f.page(f.match(fl), p)
	return rows, total, nil
}
func (f *fakeTasks) FindAll(_ context.Context, fl models.TaskFilter) ([]models.Task, error) {
	return f.where(f.match(fl)), nil
}
func (f *fakeTasks) StatusCounts(_ context.Context, customerID string) (map[string]int64, error) {
	return f.countBy(func(t *models.Task) bool { return t.CustomerID == customerID }, func(t *models.Task) string { return string(t.Status) }), nil
}
func (f *fakeTasks) CountByCustomers(_ context.Context, ids []string) (map[string]int64, error) {
	return f.countBy(func(t *models.Task) bool { return in(ids, t.CustomerID) }, func(t *models.Task) string { return t.CustomerID }), nil
}

// interactions

type fakeInteractions struct{ *table[models.Interaction] }

func newFakeInteractions() *fakeInteractions {
	return &fakeInteractions{newTable(func(i *models.Interaction) string { return i.ID })}
}

func (f *fakeInteractions) match(fl models.InteractionFilter) func(*models.Interaction) bool {
	return func(i *models.Interaction) bool {
		return (fl.CustomerID == "" || i.CustomerID == fl.CustomerID) &&
			(fl.DealID == "" || i.DealID == fl.DealID) &&
			(fl.Type == "" || i.Type == fl.Type) &&
			(fl.Completed == nil || i.Completed == *fl.Completed)
	}
}
func (f *fakeInteractions) Create(_ context.Context, i *models.Interaction) error { return f.insert(i) }
func (f *fakeInteractions) FindByID(_ context.Context, id string) (*models.Interaction, error) {
	return f.get(id)
}
func (f *fakeInteractions) Update(_ context.Context, i *models.Interaction) error { return f.replace(i) }
func (f *fakeInteractions) Delete(_ context.Context, id string) error             { return f.delete(id) }
func (f *fakeInteractions) List(_ context.Context, fl models.InteractionFilter, p utils.PageParams) ([]models.Interaction, int64, error) {
	rows, total := f.page(f.match(fl), p)
	return rows, total, nil
}
func (f *fakeInteractions) FindAll(_ context.Context, fl models.InteractionFilter) ([]models.Interaction, error) {
	return f.where(f.match(fl)), nil
}
func (f *fakeInteractions) TypeCounts(_ context.Context, customerID string) (map[string]int64, error) {
	return f.countBy(func(i *models.Interaction) bool { return i.CustomerID == customerID }, func(i *models.Interaction) string { return string(i.Type) }), nil
}
func (f *fakeInteractions) CountByCustomers(_ context.Context, ids []string) (map[string]int64, error) {
	return f.countBy(func(i *models.Interaction) bool { return in(ids, i.CustomerID) }, func(i *models.Interaction) string { return i.CustomerID }), nil
}

// notes

type fakeNotes struct{ *table[models.Note] }

func newFakeNotes() *fakeNotes {
	return &fakeNotes{newTable(func(n *models.Note) string { return n.ID })}
}

func (f *fakeNotes) match(fl models.NoteFilter) func(*models.Note) bool {
	return func(n *models.Note) bool {
		if fl.Owner != nil && n.Owner != *fl.Owner {
			return false
		}
		if fl.OwnerIDs != nil && !in(fl.OwnerIDs, n.Owner.ID) {
			return false
		}
		return (fl.CustomerID == "" || n.CustomerID == fl.CustomerID) &&
			(fl.Search == "" || contains(n.Title+" "+n.Content, fl.Search))
	}
}
func (f *fakeNotes) Create(_ context.Context, n *models.Note) error          { return f.insert(n) }
func (f *fakeNotes) FindByID(_ context.Context, id string) (*models.Note, error) { return f.get(id) }
func (f *fakeNotes) Update(_ context.Context, n *models.Note) error          { return f.replace(n) }
func (f *fakeNotes) Delete(_ context.Context, id string) error               { return f.delete(id) }
func (f *fakeNotes) List(_ context.Context, fl models.NoteFilter, p utils.PageParams) ([]models.Note, int64, error) {
	rows, total := f.page(f.match(fl), p)
	return rows, total, nil
}
func (f *fakeNotes) FindAll(_ context.Context, fl models.NoteFilter) ([]models.Note, error) {
	return f.where(f.match(fl)), nil
}
func (f *fakeNotes) CountByCustomers(_ context.Context, ids []string) (map[string]int64, error) {
	return f.countBy(func(n *models.Note) bool { return in(ids, n.CustomerID) }, func(n *models.Note) string { return n.CustomerID }), nil
}

// activity logs

type fakeActivityLogs struct{ *table[models.ActivityLog] }

func newFakeActivityLogs() *fakeActivityLogs {
	return &fakeActivityLogs{newTable(func(l *models.ActivityLog) string { return l.ID })}
}

func (f *fakeActivityLogs) Insert(_ context.Context, l *models.ActivityLog) error { return f.insert(l) }
func (f *fakeActivityLogs) FindByID(_ context.Context, id string) (*models.ActivityLog, error) {
	return f.get(id)
}
func (f *fakeActivityLogs) List(_ context.Context, fl models.ActivityLogFilter, p utils.PageParams) ([]models.ActivityLog, int64, error) {
	rows, total := f.page(func(l *models.ActivityLog) bool {
		return (fl.Entity == "" || l.Entity == fl.Entity) && (fl.UserID == "" || l.UserID == fl.UserID)
	}, p)
	return rows, total, nil
}

// approvals

type fakeApprovals struct{ *table[models.ApprovalRequest] }

func newFakeApprovals() *fakeApprovals {
	return &fakeApprovals{newTable(func(a *models.ApprovalRequest) string { return a.ID })}
}

func (f *fakeApprovals) Create(_ context.Context, a *models.ApprovalRequest) error { return f.insert(a) }
func (f *fakeApprovals) FindByID(_ context.Context, id string) (*models.ApprovalRequest, error) {
	return f.get(id)
}
func (f *fakeApprovals) UpdateFromStatus(_ context.Context, a *models.ApprovalRequest, from models.ApprovalStatus) error {
	cur, err := f.get(a.ID)
	if err != nil || cur.Status != from {
		return repository.ErrConflict
	}
	return f.replace(a)
}
func (f *fakeApprovals) List(_ context.Context, fl models.ApprovalFilter, p utils.PageParams) ([]models.ApprovalRequest, int64, error) {
	rows, total := f.page(func(a *models.ApprovalRequest) bool {
		return fl.Status == "" || a.Status == fl.Status
	}, p)
	return rows, total, nil
}

// jobs and mail

// inlineJobs runs submitted jobs immediately.
type inlineJobs struct {
	accept bool
	errs   []error
}

func (j *inlineJobs) Submit(_ string, fn worker.Job) bool {
	if !j.accept {
		return false
	}
	if err := fn(context.Background()); err != nil {
		j.errs = append(j.errs, err)
	}
	return true
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

var errSMTPDown = errors.New("dial tcp: connection refused")

// fixture wires every service against fresh fakes.
type fixture struct {
	users        *fakeUsers
	customers    *fakeCustomers
	customerTags *fakeCustomerTags
	tags         *fakeTags
	contacts     *fakeContacts
	deals        *fakeDeals
	tasks        *fakeTasks
	interactions *fakeInteractions
	notes        *fakeNotes
	jobs         *inlineJobs
	mailer       *fakeMailer
	notifier     *Notifier
}

func newFixture() *fixture {
	links := newFakeCustomerTags()
	f := &fixture{
		users:        newFakeUsers(),
		customerTags: links,
		customers:    newFakeCustomers(links),
		tags:         newFakeTags(),
		contacts:     newFakeContacts(),
		deals:        newFakeDeals(),
		tasks:        newFakeTasks(),
		interactions: newFakeInteractions(),
		notes:        newFakeNotes(),
		jobs:         &inlineJobs{accept: true},
		mailer:       &fakeMailer{},
	}
	f.notifier = NewNotifier(f.mailer, f.jobs)
	return f
}

func (f *fixture) customerService() *CustomerService {
	return NewCustomerService(CustomerDeps{
		Customers:    f.customers,
		CustomerTags: f.customerTags,
		Tags:         f.tags,
		Contacts:     f.contacts,
		Deals:        f.deals,
		Tasks:        f.tasks,
		Interactions: f.interactions,
		Notes:        f.notes,
		Users:        f.users,
	})
}

func (f *fixture) addCustomer(email string) *models.Customer {
	c := &models.Customer{
		ID:        models.NewID(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Status:    models.CustomerStatusLEAD,
		IsActive:  true,
	}
	c.Touch(time.Now())
	_ = f.customers.insert(c)
	return c
}

var firstPage = utils.PageParams{Page: 1, Limit: 10}
