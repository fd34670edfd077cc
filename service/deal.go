package service

import (
	"context"
	"sort"
	"strings"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
)

const defaultCurrency = "USD"

type DealService struct {
	deals     DealStore
	customers CustomerStore
}

func NewDealService(deals DealStore, customers CustomerStore) *DealService {
	return &DealService{deals: deals, customers: customers}
}

func (s *DealService) Create(ctx context.Context, req models.CreateDealRequest, callerID string) (*models.DealView, error) {
	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, notFound(err, "Customer")
	}

	deal := &models.Deal{
		ID:                models.NewID(),
		Title:             req.Title,
		Description:       req.Description,
		Value:             req.Value,
		Currency:          strings.ToUpper(req.Currency),
		Stage:             req.Stage,
		ExpectedCloseDate: req.ExpectedCloseDate,
		CustomerID:        req.CustomerID,
		AssignedUserID:    req.AssignedUserID,
	}
	if deal.Currency == "" {
		deal.Currency = defaultCurrency
	}
	if deal.Stage == "" {
		deal.Stage = models.DealStagePROSPECTING
	}
	if req.Probability != nil {
		deal.Probability = *req.Probability
	}
	if deal.AssignedUserID == "" {
		deal.AssignedUserID = callerID
	}
	deal.Touch(now())
	closeIfFinal(deal)

	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, err
	}
	return &models.DealView{Deal: *deal, Customer: customer}, nil
}

func (s *DealService) List(ctx context.Context, f models.DealFilter, page utils.PageParams) (utils.Paginated[models.Deal], error) {
	f.Search = page.Search
	deals, total, err := s.deals.List(ctx, f, page)
	if err != nil {
		return utils.Paginated[models.Deal]{}, err
	}
	return utils.NewPaginated(deals, total, page.Page, page.Limit), nil
}

func (s *DealService) Get(ctx context.Context, id string) (*models.DealView, error) {
	deal, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Deal")
	}
	view := &models.DealView{Deal: *deal}
	if customer, err := s.customers.FindByID(ctx, deal.CustomerID); err == nil {
		view.Customer = customer
	}
	return view, nil
}

func (s *DealService) Update(ctx context.Context, id string, req models.UpdateDealRequest) (*models.Deal, error) {
	deal, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Deal")
	}

	setIf(&deal.Title, req.Title)
	setIf(&deal.Description, req.Description)
	setIf(&deal.Value, req.Value)
	setIf(&deal.Stage, req.Stage)
	setIf(&deal.Probability, req.Probability)
	setIf(&deal.AssignedUserID, req.AssignedUserID)
	if req.Currency != nil {
		deal.Currency = strings.ToUpper(*req.Currency)
	}
	if req.ExpectedCloseDate != nil {
		deal.ExpectedCloseDate = req.ExpectedCloseDate
	}
	if req.ActualCloseDate != nil {
		deal.ActualCloseDate = req.ActualCloseDate
	}
	deal.Touch(now())
	closeIfFinal(deal)

	if err := s.deals.Update(ctx, deal); err != nil {
		return nil, notFound(err, "Deal")
	}
	return deal, nil
}

// UpdateStage moves a deal to any stage; stages have no ordering rules.
func (s *DealService) UpdateStage(ctx context.Context, id string, stage models.DealStage) (*models.Deal, error) {
	return s.Update(ctx, id, models.UpdateDealRequest{Stage: &stage})
}

func (s *DealService) Delete(ctx context.Context, id string) error {
	return notFound(s.deals.Delete(ctx, id), "Deal")
}

// PipelineStats aggregates deals per stage. Stages without deals are omitted.
func (s *DealService) PipelineStats(ctx context.Context, f models.DealFilter) (*models.PipelineStats, error) {
	buckets, err := s.deals.StageTotals(ctx, f)
	if err != nil {
		return nil, err
	}
	order := make(map[models.DealStage]int, len(models.DealStages))
	for i, st := range models.DealStages {
		order[st] = i
	}
	sortBuckets(buckets, order)

	for i := range buckets {
		buckets[i].TotalValue = round2(buckets[i].TotalValue)
		buckets[i].AverageValue = round2(buckets[i].AverageValue)
	}
	return &models.PipelineStats{ByStage: buckets, Overview: pipelineOverview(buckets)}, nil
}

func pipelineOverview(buckets []models.StageBucket) models.PipelineOverview {
	var o models.PipelineOverview
	for _, b := range buckets {
		o.TotalDeals += b.Count
		o.TotalValue += b.TotalValue
		switch b.Stage {
		case models.DealStageCLOSED_WON:
			o.WonDeals += b.Count
		case models.DealStageCLOSED_LOST:
			o.LostDeals += b.Count
		}
	}
	o.TotalValue = round2(o.TotalValue)
	o.WinRate = winRate(o.WonDeals, o.TotalDeals)
	return o
}

// winRate is the percentage of won deals over all deals, 0 when there are none.
func winRate(won, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(won) / float64(total) * 100)
}

func sortBuckets(buckets []models.StageBucket, order map[models.DealStage]int) {
	sort.Slice(buckets, func(i, j int) bool {
		return order[buckets[i].Stage] < order[buckets[j].Stage]
	})
}

// closeIfFinal stamps the actual close date the first time a deal reaches a closed stage.
func closeIfFinal(deal *models.Deal) {
	if deal.Stage.IsClosed() && deal.ActualCloseDate == nil {
		t := now()
		deal.ActualCloseDate = &t
	}
}
