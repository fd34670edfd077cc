package service

import (
	"context"
	"testing"

	"github.com/BerniceZTT/crm_api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinRate(t *testing.T) {
	assert.Equal(t, 0.0, winRate(0, 0))
	assert.Equal(t, 25.0, winRate(1, 4))
	assert.Equal(t, 33.33, winRate(1, 3))
	assert.Equal(t, 100.0, winRate(2, 2))
}

func TestDealCreateDefaults(t *testing.T) {
	fx := newFixture()
	customer := fx.addCustomer("buyer@example.com")
	deals := NewDealService(fx.deals, fx.customers)

	view, err := deals.Create(context.Background(), models.CreateDealRequest{
		Title:      "Annual licence",
		Value:      1200,
		CustomerID: customer.ID,
	}, "caller-1")
	require.NoError(t, err)

	assert.Equal(t, models.DealStagePROSPECTING, view.Stage)
	assert.Equal(t, "USD", view.Currency)
	assert.Equal(t, "caller-1", view.AssignedUserID)
	assert.Nil(t, view.ActualCloseDate)
	require.NotNil(t, view.Customer)
	assert.Equal(t, customer.ID, view.Customer.ID)

	stats, err := deals.PipelineStats(context.Background(), models.DealFilter{})
	require.NoError(t, err)
	require.Len(t, stats.ByStage, 1)
	assert.Equal(t, models.DealStagePROSPECTING, stats.ByStage[0].Stage)
	assert.GreaterOrEqual(t, stats.ByStage[0].Count, int64(1))
	assert.Equal(t, 0.0, stats.Overview.WinRate)
}

func TestDealCreateUnknownCustomer(t *testing.T) {
	fx := newFixture()
	deals := NewDealService(fx.deals, fx.customers)

	_, err := deals.Create(context.Background(), models.CreateDealRequest{Title: "x", CustomerID: models.NewID()}, "u")
	requireStatus(t, err, statusNotFound)
}

func TestPipelineStatsOrderAndWinRate(t *testing.T) {
	fx := newFixture()
	customer := fx.addCustomer("pipeline@example.com")
	deals := NewDealService(fx.deals, fx.customers)
	ctx := context.Background()

	for _, d := range []struct {
		stage models.DealStage
		value float64
	}{
		{models.DealStageCLOSED_WON, 100},
		{models.DealStageNEGOTIATION, 50.555},
		{models.DealStageCLOSED_LOST, 10},
		{models.DealStagePROSPECTING, 20},
	} {
		_, err := deals.Create(ctx, models.CreateDealRequest{Title: "d", Value: d.value, Stage: d.stage, CustomerID: customer.ID}, "u")
		require.NoError(t, err)
	}

	stats, err := deals.PipelineStats(ctx, models.DealFilter{})
	require.NoError(t, err)

	stages := make([]models.DealStage, len(stats.ByStage))
	for i, b := range stats.ByStage {
		stages[i] = b.Stage
	}
	assert.Equal(t, []models.DealStage{
		models.DealStagePROSPECTING,
		models.DealStageNEGOTIATION,
		models.DealStageCLOSED_WON,
		models.DealStageCLOSED_LOST,
	}, stages)
	assert.Equal(t, 50.56, stats.ByStage[1].TotalValue)

	assert.Equal(t, int64(4), stats.Overview.TotalDeals)
	assert.Equal(t, int64(1), stats.Overview.WonDeals)
	assert.Equal(t, int64(1), stats.Overview.LostDeals)
	assert.Equal(t, 25.0, stats.Overview.WinRate)
}

func TestDealStageChangeStampsCloseDate(t *testing.T) {
	fx := newFixture()
	customer := fx.addCustomer("close@example.com")
	deals := NewDealService(fx.deals, fx.customers)
	ctx := context.Background()

	view, err := deals.Create(ctx, models.CreateDealRequest{Title: "d", CustomerID: customer.ID}, "u")
	require.NoError(t, err)

	deal, err := deals.UpdateStage(ctx, view.ID, models.DealStageCLOSED_WON)
	require.NoError(t, err)
	require.NotNil(t, deal.ActualCloseDate)

	// moving backwards is allowed
	deal, err = deals.UpdateStage(ctx, view.ID, models.DealStageQUALIFICATION)
	require.NoError(t, err)
	assert.Equal(t, models.DealStageQUALIFICATION, deal.Stage)

	requireStatus(t, deals.Delete(ctx, models.NewID()), statusNotFound)
}
