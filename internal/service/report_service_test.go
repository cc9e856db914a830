package service

import (
	"context"
	"testing"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReportService(t *testing.T) (*ReportService, *repository.Repositories, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewReportService(repos), repos, db
}

func TestGetDashboard(t *testing.T) {
	svc, repos, db := setupReportService(t)
	ctx := context.Background()

	testutil.SeedLead(t, db, "lead-001", "Ramesh Shah", "5", entity.LeadStatusNew)
	testutil.SeedLead(t, db, "lead-002", "Priya Desai", "3", entity.LeadStatusContacted)
	testutil.SeedProject(t, db, "proj-001", "Mehta Residence")
	testutil.SeedInventoryItem(t, db, "item-001", "Inverter 5kW", 3, 10, "₹45,000")
	testutil.SeedTeam(t, db, "team-001", "Team Alpha", entity.TeamStatusDeployed)

	today := time.Now().Format("2006-01-02")
	schedSvc := NewScheduleService(repos.Schedule)
	_, err := schedSvc.CreateJob(ctx, &CreateJobRequest{ClientName: "Mehta Residence", Date: today})
	require.NoError(t, err)

	dash, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), dash.NewLeads)
	assert.Equal(t, int64(1), dash.ActiveProjects)
	assert.Equal(t, int64(1), dash.LowStockItems)
	assert.Equal(t, int64(1), dash.DeployedTeams)
	assert.Len(t, dash.TodaysJobs, 1)
	assert.Len(t, dash.RecentLeads, 2)
	assert.Len(t, dash.RecentProjects, 1)
}

func TestGetReportAggregates(t *testing.T) {
	svc, repos, db := setupReportService(t)
	ctx := context.Background()

	testutil.SeedLead(t, db, "lead-001", "Ramesh Shah", "5", entity.LeadStatusNew)
	testutil.SeedLead(t, db, "lead-002", "Priya Desai", "3", entity.LeadStatusNew)
	testutil.SeedProject(t, db, "proj-001", "Mehta Residence")

	quoteSvc := NewQuotationService(repos.Quotation)
	quote, err := quoteSvc.Create(ctx, "user-001", &CreateQuotationRequest{
		Type:     entity.TypeResidential,
		Snapshot: entity.JSONB{"client_name": "Ramesh Shah", "capacity": 5.0},
	})
	require.NoError(t, err)
	_, err = quoteSvc.UpdateStatus(ctx, quote.ID, &UpdateQuotationStatusRequest{Status: entity.QuoteStatusAccepted})
	require.NoError(t, err)

	report, err := svc.GetReport(ctx, "this_year", "", "")
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.Leads)
	assert.Equal(t, int64(1), report.Projects)
	assert.Equal(t, 1, report.AcceptedQuotes)
	assert.Equal(t, 184345.0, report.Revenue)
	assert.Equal(t, "₹1.84 L", report.RevenueDisplay)
	assert.Equal(t, 5.0, report.CapacityKw)
	assert.Equal(t, 50.0, report.ConversionRate)
	require.NotEmpty(t, report.TopStages)
	assert.Equal(t, entity.StageSiteSurvey, report.TopStages[0].Stage)
}

func TestDisplayRevenue(t *testing.T) {
	assert.Equal(t, "₹45,000", displayRevenue(45000))
	assert.Equal(t, "₹1.84 L", displayRevenue(183641))
}
