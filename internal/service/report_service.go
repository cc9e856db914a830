package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
)

// ReportService aggregates dashboard metrics and date-ranged business reports.
type ReportService struct {
	repos *repository.Repositories
}

func NewReportService(repos *repository.Repositories) *ReportService {
	return &ReportService{repos: repos}
}

// Dashboard is the landing-page metric block.
type Dashboard struct {
	NewLeads       int64            `json:"new_leads"`
	ActiveProjects int64            `json:"active_projects"`
	LowStockItems  int64            `json:"low_stock_items"`
	DeployedTeams  int64            `json:"deployed_teams"`
	TodaysJobs     []entity.Job     `json:"todays_jobs"`
	RecentLeads    []entity.Lead    `json:"recent_leads"`
	RecentProjects []entity.Project `json:"recent_projects"`
}

// Report is the date-ranged business summary.
type Report struct {
	From           time.Time               `json:"from"`
	To             time.Time               `json:"to"`
	Leads          int64                   `json:"leads"`
	Projects       int64                   `json:"projects"`
	AcceptedQuotes int                     `json:"accepted_quotes"`
	Revenue        float64                 `json:"revenue"`
	RevenueDisplay string                  `json:"revenue_display"`
	CapacityKw     float64                 `json:"capacity_kw"`
	ConversionRate float64                 `json:"conversion_rate"`
	TopStages      []repository.StageCount `json:"top_stages"`
}

// GetDashboard assembles the landing-page metrics.
func (s *ReportService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	dash := &Dashboard{}
	var err error

	if dash.NewLeads, err = s.repos.Lead.CountByStatus(ctx, entity.LeadStatusNew); err != nil {
		return nil, fmt.Errorf("count new leads: %w", err)
	}
	if dash.ActiveProjects, err = s.repos.Project.CountByStatus(ctx, entity.ProjectStatusInProgress); err != nil {
		return nil, fmt.Errorf("count active projects: %w", err)
	}
	if dash.LowStockItems, err = s.repos.Inventory.CountLowStock(ctx); err != nil {
		return nil, fmt.Errorf("count low stock: %w", err)
	}
	if dash.DeployedTeams, err = s.repos.Team.CountByStatus(ctx, entity.TeamStatusDeployed); err != nil {
		return nil, fmt.Errorf("count deployed teams: %w", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dash.TodaysJobs, err = s.repos.Schedule.ListJobsBetween(ctx, today, today.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("list todays jobs: %w", err)
	}
	if dash.RecentLeads, err = s.repos.Lead.Recent(ctx, 3); err != nil {
		return nil, fmt.Errorf("recent leads: %w", err)
	}
	if dash.RecentProjects, err = s.repos.Project.Recent(ctx, 3); err != nil {
		return nil, fmt.Errorf("recent projects: %w", err)
	}
	return dash, nil
}

// GetReport builds the business summary for a named date range.
func (s *ReportService) GetReport(ctx context.Context, rangeName, fromStr, toStr string) (*Report, error) {
	from, to, err := DateRange(rangeName, fromStr, toStr)
	if err != nil {
		return nil, err
	}
	if from.IsZero() {
		from = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() {
		to = time.Now()
	}

	report := &Report{From: from, To: to}

	if report.Leads, err = s.repos.Lead.CountCreatedBetween(ctx, from, to); err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	if report.Projects, err = s.repos.Project.CountCreatedBetween(ctx, from, to); err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	quotes, err := s.repos.Quotation.ListByStatusBetween(ctx, entity.QuoteStatusAccepted, from, to)
	if err != nil {
		return nil, fmt.Errorf("list accepted quotes: %w", err)
	}
	report.AcceptedQuotes = len(quotes)
	for _, q := range quotes {
		report.Revenue += UnitPrice(q.Amount)
	}
	report.RevenueDisplay = displayRevenue(report.Revenue)

	if report.CapacityKw, err = s.repos.Project.SumCapacityBetween(ctx, from, to); err != nil {
		return nil, fmt.Errorf("sum capacity: %w", err)
	}
	if report.Leads > 0 {
		rate := float64(report.Projects) / float64(report.Leads) * 100
		report.ConversionRate = math.Round(rate*10) / 10
	}
	if report.TopStages, err = s.repos.Project.CountByStage(ctx, from, to, 5); err != nil {
		return nil, fmt.Errorf("count stages: %w", err)
	}
	return report, nil
}

// displayRevenue shows large figures in lakhs.
func displayRevenue(revenue float64) string {
	if revenue > 100000 {
		return fmt.Sprintf("₹%.2f L", revenue/100000)
	}
	return FormatINR(revenue)
}
