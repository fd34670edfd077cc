package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BerniceZTT/crm_api/cache"
	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/repository"
	"github.com/BerniceZTT/crm_api/utils"

	"golang.org/x/sync/errgroup"
)

const (
	defaultHighValueThreshold = 10000
	defaultRecentDays         = 30
	relationPreview           = 10
	overviewCacheKey          = "customers:overview"
)

// CustomerDeps groups the stores the customer service reads across.
type CustomerDeps struct {
	Customers    CustomerStore
	CustomerTags CustomerTagStore
	Tags         TagStore
	Contacts     ContactStore
	Deals        DealStore
	Tasks        TaskStore
	Interactions InteractionStore
	Notes        NoteStore
	Users        UserStore
	Local        *cache.Memory
}

type CustomerService struct {
	customers    CustomerStore
	customerTags CustomerTagStore
	tags         TagStore
	contacts     ContactStore
	deals        DealStore
	tasks        TaskStore
	interactions InteractionStore
	notes        NoteStore
	users        UserStore
	local        *cache.Memory
}

func NewCustomerService(d CustomerDeps) *CustomerService {
	local := d.Local
	if local == nil {
		local = cache.NewMemory(time.Minute)
	}
	return &CustomerService{
		customers:    d.Customers,
		customerTags: d.CustomerTags,
		tags:         d.Tags,
		contacts:     d.Contacts,
		deals:        d.Deals,
		tasks:        d.Tasks,
		interactions: d.Interactions,
		notes:        d.Notes,
		users:        d.Users,
		local:        local,
	}
}

func (s *CustomerService) Create(ctx context.Context, req models.CreateCustomerRequest) (*models.CustomerView, error) {
	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:             models.NewID(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          email,
		Phone:          req.Phone,
		Company:        req.Company,
		JobTitle:       req.JobTitle,
		Status:         req.Status,
		AssignedUserID: req.AssignedUserID,
		CustomFields:   req.CustomFields,
		IsActive:       true,
	}
	if customer.Status == "" {
		customer.Status = models.CustomerStatusLEAD
	}
	if req.Score != nil {
		customer.Score = *req.Score
	}
	if req.LifetimeValue != nil {
		customer.LifetimeValue = *req.LifetimeValue
	}
	customer.Touch(now())

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, conflict(err, "Customer with this email already exists")
	}
	if len(req.Tags) > 0 {
		if err := s.setTags(ctx, customer.ID, req.Tags); err != nil {
			return nil, err
		}
	}
	s.local.Delete(overviewCacheKey)

	views, err := s.views(ctx, []models.Customer{*customer}, true)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns active customers matching f. Search covers name, email and company.
func (s *CustomerService) List(ctx context.Context, f models.CustomerFilter, page utils.PageParams) (utils.Paginated[models.CustomerView], error) {
	f.Search = page.Search
	f.IncludeAll = false

	customers, total, err := s.customers.List(ctx, f, page)
	if err != nil {
		return utils.Paginated[models.CustomerView]{}, err
	}
	views, err := s.views(ctx, customers, true)
	if err != nil {
		return utils.Paginated[models.CustomerView]{}, err
	}
	return utils.NewPaginated(views, total, page.Page, page.Limit), nil
}

// Get loads one customer. With includeRelations the view also carries its
// contacts and deals plus the latest interactions and tasks.
func (s *CustomerService) Get(ctx context.Context, id string, includeRelations bool) (*models.CustomerView, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Customer")
	}
	views, err := s.views(ctx, []models.Customer{*customer}, false)
	if err != nil {
		return nil, err
	}
	view := &views[0]
	if !includeRelations {
		return view, nil
	}

	preview := utils.PageParams{Page: 1, Limit: relationPreview}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		contacts, err := s.contacts.FindAll(gctx, models.ContactFilter{CustomerID: id})
		view.Contacts = contacts
		return err
	})
	g.Go(func() error {
		deals, err := s.deals.FindAll(gctx, models.DealFilter{CustomerID: id})
		view.Deals = deals
		return err
	})
	g.Go(func() error {
		interactions, _, err := s.interactions.List(gctx, models.InteractionFilter{CustomerID: id}, preview)
		view.Interactions = interactions
		return err
	})
	g.Go(func() error {
		tasks, _, err := s.tasks.List(gctx, models.TaskFilter{CustomerID: id}, preview)
		view.Tasks = tasks
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, req models.UpdateCustomerRequest) (*models.CustomerView, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Customer")
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != customer.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
		}
		customer.Email = email
	}
	setIf(&customer.FirstName, req.FirstName)
	setIf(&customer.LastName, req.LastName)
	setIf(&customer.Phone, req.Phone)
	setIf(&customer.Company, req.Company)
	setIf(&customer.JobTitle, req.JobTitle)
	setIf(&customer.Status, req.Status)
	setIf(&customer.Score, req.Score)
	setIf(&customer.LifetimeValue, req.LifetimeValue)
	setIf(&customer.AssignedUserID, req.AssignedUserID)
	customer.Touch(now())

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, conflict(notFound(err, "Customer"), "Customer with this email already exists")
	}
	if req.Tags != nil {
		if err := s.setTags(ctx, id, *req.Tags); err != nil {
			return nil, err
		}
	}
	s.local.Delete(overviewCacheKey)

	views, err := s.views(ctx, []models.Customer{*customer}, false)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete deactivates the customer. Related records are kept.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.customers.SoftDelete(ctx, id); err != nil {
		return notFound(err, "Customer")
	}
	s.local.Delete(overviewCacheKey)
	return nil
}

// AddContactMethod stores a new contact. A primary contact demotes the
// customer's other contacts of the same type.
func (s *CustomerService) AddContactMethod(ctx context.Context, customerID string, req models.AddContactMethodRequest) (*models.Contact, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, notFound(err, "Customer")
	}

	contact := &models.Contact{
		ID:         models.NewID(),
		CustomerID: customerID,
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
		if err := s.contacts.ClearPrimary(ctx, customerID, contact.Type, contact.ID); err != nil {
			return nil, err
		}
	}
	return contact, nil
}

// AddCustomField replaces any field with the same name.
func (s *CustomerService) AddCustomField(ctx context.Context, customerID string, field models.CustomField) (*models.CustomField, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, notFound(err, "Customer")
	}

	fields := make([]models.CustomField, 0, len(customer.CustomFields)+1)
	for _, f := range customer.CustomFields {
		if f.Name != field.Name {
			fields = append(fields, f)
		}
	}
	customer.CustomFields = append(fields, field)
	customer.Touch(now())

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, notFound(err, "Customer")
	}
	return &field, nil
}

// Timeline merges everything that happened to a customer, newest first.
// Pagination applies to the merged list.
func (s *CustomerService) Timeline(ctx context.Context, customerID string, page utils.PageParams) (utils.Paginated[models.TimelineEntry], error) {
	var empty utils.Paginated[models.TimelineEntry]
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return empty, notFound(err, "Customer")
	}

	var (
		interactions []models.Interaction
		deals        []models.Deal
		tasks        []models.Task
		notes        []models.Note
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		interactions, err = s.interactions.FindAll(gctx, models.InteractionFilter{CustomerID: customerID})
		return err
	})
	g.Go(func() (err error) {
		deals, err = s.deals.FindAll(gctx, models.DealFilter{CustomerID: customerID})
		return err
	})
	g.Go(func() (err error) {
		tasks, err = s.tasks.FindAll(gctx, models.TaskFilter{CustomerID: customerID})
		return err
	})
	g.Go(func() (err error) {
		notes, err = s.notes.FindAll(gctx, models.NoteFilter{CustomerID: customerID})
		return err
	})
	if err := g.Wait(); err != nil {
		return empty, err
	}

	entries := make([]models.TimelineEntry, 0, len(interactions)+len(deals)+len(tasks)+len(notes))
	for _, v := range interactions {
		entries = append(entries, models.TimelineEntry{Type: "interaction", ID: v.ID, CreatedAt: v.CreatedAt, Data: v})
	}
	for _, v := range deals {
		entries = append(entries, models.TimelineEntry{Type: "deal", ID: v.ID, CreatedAt: v.CreatedAt, Data: v})
	}
	for _, v := range tasks {
		entries = append(entries, models.TimelineEntry{Type: "task", ID: v.ID, CreatedAt: v.CreatedAt, Data: v})
	}
	for _, v := range notes {
		entries = append(entries, models.TimelineEntry{Type: "note", ID: v.ID, CreatedAt: v.CreatedAt, Data: v})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	total := int64(len(entries))
	skip := page.Skip()
	start := len(entries)
	if skip >= 0 && skip < int64(len(entries)) {
		start = int(skip)
	}
	end := start + page.Limit
	if end > len(entries) {
		end = len(entries)
	}
	return utils.NewPaginated(entries[start:end], total, page.Page, page.Limit), nil
}

func (s *CustomerService) Stats(ctx context.Context, customerID string) (*models.CustomerStats, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, notFound(err, "Customer")
	}

	stats := &models.CustomerStats{
		LifetimeValue: customer.LifetimeValue,
		CustomerSince: customer.CreatedAt,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deals, err := s.deals.FindAll(gctx, models.DealFilter{CustomerID: customerID})
		if err != nil {
			return err
		}
		stats.TotalDeals = int64(len(deals))
		for _, d := range deals {
			stats.TotalDealValue += d.Value
		}
		return nil
	})
	g.Go(func() (err error) {
		stats.InteractionsByType, err = s.interactions.TypeCounts(gctx, customerID)
		return err
	})
	g.Go(func() (err error) {
		stats.TasksByStatus, err = s.tasks.StatusCounts(gctx, customerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// Overview summarizes active customers per status. The result is kept in
// the local cache until the next customer write.
func (s *CustomerService) Overview(ctx context.Context) ([]models.StatusSummary, error) {
	if v, ok := s.local.Get(overviewCacheKey); ok {
		if rows, ok := v.([]models.StatusSummary); ok {
			return rows, nil
		}
	}
	rows, err := s.customers.StatusSummary(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AverageScore = round2(rows[i].AverageScore)
	}
	s.local.Put(overviewCacheKey, rows, 0)
	return rows, nil
}

func (s *CustomerService) Segments(ctx context.Context, req models.SegmentRequest) ([]models.CustomerSegment, error) {
	segments := make([]models.CustomerSegment, 0)

	if req.IncludeHighValue {
		threshold := float64(defaultHighValueThreshold)
		if req.HighValueThreshold != nil {
			threshold = *req.HighValueThreshold
		}
		seg, err := s.segment(ctx, "High Value Customers",
			fmt.Sprintf("Lifetime Value >= %g", threshold),
			models.CustomerFilter{MinLifetime: &threshold})
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	if req.IncludeRecent {
		days := defaultRecentDays
		if req.RecentDays != nil {
			days = *req.RecentDays
		}
		seg, err := s.segment(ctx, "Recent Customers",
			fmt.Sprintf("Created within last %d days", days),
			models.CustomerFilter{CreatedAfter: now().AddDate(0, 0, -days)})
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	if req.SegmentByStatus {
		summary, err := s.customers.StatusSummary(ctx)
		if err != nil {
			return nil, err
		}
		for _, row := range summary {
			seg, err := s.segment(ctx, fmt.Sprintf("%s Customers", row.Status),
				fmt.Sprintf("Status = %s", row.Status),
				models.CustomerFilter{Status: row.Status})
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		}
	}
	return segments, nil
}

func (s *CustomerService) segment(ctx context.Context, name, criteria string, f models.CustomerFilter) (models.CustomerSegment, error) {
	customers, err := s.customers.FindAll(ctx, f)
	if err != nil {
		return models.CustomerSegment{}, err
	}
	views, err := s.views(ctx, customers, false)
	if err != nil {
		return models.CustomerSegment{}, err
	}
	return models.CustomerSegment{Name: name, Criteria: criteria, Customers: views, Count: int64(len(views))}, nil
}

func (s *CustomerService) Tags(ctx context.Context, customerID string) ([]models.Tag, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, notFound(err, "Customer")
	}
	byCustomer, err := s.customerTags.TagIDsByCustomer(ctx, []string{customerID})
	if err != nil {
		return nil, err
	}
	ids := byCustomer[customerID]
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	return s.tags.FindByIDs(ctx, ids)
}

// AddTag links an existing tag. Linking twice returns the existing link.
func (s *CustomerService) AddTag(ctx context.Context, customerID, tagID string) (*models.CustomerTag, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, notFound(err, "Customer")
	}
	if _, err := s.tags.FindByID(ctx, tagID); err != nil {
		return nil, notFound(err, "Tag")
	}
	return s.customerTags.Add(ctx, customerID, tagID)
}

func (s *CustomerService) RemoveTag(ctx context.Context, customerID, tagID string) error {
	return notFound(s.customerTags.Remove(ctx, customerID, tagID), "Customer tag")
}

func (s *CustomerService) CustomersWithTag(ctx context.Context, tagID string, page utils.PageParams) (utils.Paginated[models.CustomerView], error) {
	if _, err := s.tags.FindByID(ctx, tagID); err != nil {
		return utils.Paginated[models.CustomerView]{}, notFound(err, "Tag")
	}
	return s.List(ctx, models.CustomerFilter{TagIDs: []string{tagID}}, page)
}

// views attaches tags and the assigned user, plus relation counts when withCounts is set.
func (s *CustomerService) views(ctx context.Context, customers []models.Customer, withCounts bool) ([]models.CustomerView, error) {
	views := make([]models.CustomerView, len(customers))
	if len(customers) == 0 {
		return views, nil
	}

	ids := make([]string, len(customers))
	var userIDs []string
	for i, c := range customers {
		ids[i] = c.ID
		if c.AssignedUserID != "" {
			userIDs = append(userIDs, c.AssignedUserID)
		}
	}

	var (
		tagIDs                                map[string][]string
		tagsByID                              = map[string]models.Tag{}
		users                                 = map[string]*models.User{}
		deals, interactions, tasks, noteCount map[string]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tagIDs, err = s.customerTags.TagIDsByCustomer(gctx, ids)
		if err != nil {
			return err
		}
		var all []string
		for _, t := range tagIDs {
			all = append(all, t...)
		}
		if len(all) == 0 {
			return nil
		}
		tags, err := s.tags.FindByIDs(gctx, all)
		if err != nil {
			return err
		}
		for _, t := range tags {
			tagsByID[t.ID] = t
		}
		return nil
	})
	if len(userIDs) > 0 {
		g.Go(func() error {
			found, err := s.users.FindByIDs(gctx, userIDs)
			if err != nil {
				return err
			}
			for i := range found {
				users[found[i].ID] = &found[i]
			}
			return nil
		})
	}
	if withCounts {
		g.Go(func() (err error) { deals, err = s.deals.CountByCustomers(gctx, ids); return err })
		g.Go(func() (err error) { interactions, err = s.interactions.CountByCustomers(gctx, ids); return err })
		g.Go(func() (err error) { tasks, err = s.tasks.CountByCustomers(gctx, ids); return err })
		g.Go(func() (err error) { noteCount, err = s.notes.CountByCustomers(gctx, ids); return err })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, c := range customers {
		view := models.CustomerView{Customer: c, Tags: make([]models.Tag, 0, len(tagIDs[c.ID]))}
		for _, tid := range tagIDs[c.ID] {
			if t, ok := tagsByID[tid]; ok {
				view.Tags = append(view.Tags, t)
			}
		}
		view.AssignedUser = users[c.AssignedUserID]
		if withCounts {
			view.Count = &models.RelationCounts{
				Deals:        deals[c.ID],
				Interactions: interactions[c.ID],
				Tasks:        tasks[c.ID],
				Notes:        noteCount[c.ID],
			}
		}
		views[i] = view
	}
	return views, nil
}

// setTags makes names the customer's exact tag set, creating missing tags.
func (s *CustomerService) setTags(ctx context.Context, customerID string, names []string) error {
	ids := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tag, err := s.tags.FindOrCreateByName(ctx, name)
		if err != nil {
			return err
		}
		ids = append(ids, tag.ID)
	}
	return s.customerTags.Replace(ctx, customerID, ids)
}

func (s *CustomerService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.customers.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return utils.CreateConflictError("Customer with this email already exists")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// setIf copies *src into dst when the request carried the field.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
