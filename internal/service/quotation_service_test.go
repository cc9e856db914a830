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
)

func setupQuotationService(t *testing.T) *QuotationService {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewQuotationService(repos.Quotation)
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{183641, "₹1,83,641"},
		{78000, "₹78,000"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{10000000, "₹1,00,00,000"},
		{0, "₹0"},
		{-45000, "₹-45,000"},
		{2499.6, "₹2,500"},
	}
	for _, tc := range cases {
		if got := FormatINR(tc.amount); got != tc.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestRenderQuoteResidentialDefaults(t *testing.T) {
	doc := RenderQuote(entity.TypeResidential, entity.JSONB{
		"client_name": "Ramesh Shah",
		"capacity":    5.0,
	})

	assert.Equal(t, 5.0, doc.Capacity)
	assert.Equal(t, 5*entity.ResidentialPricePerKw, doc.TotalCost)
	assert.Equal(t, entity.ResidentialSubsidy, doc.Subsidy)
	assert.Equal(t, 5*entity.ResidentialPricePerKw-entity.ResidentialSubsidy, doc.NetCost)
	assert.Equal(t, 10, doc.PanelCount)
	assert.Equal(t, "₹1,84,345", doc.Amount)
}

func TestRenderQuoteIndustrial(t *testing.T) {
	doc := RenderQuote(entity.TypeIndustrial, entity.JSONB{
		"client_name": "Joshi Textiles",
		"capacity":    100.0,
	})

	assert.Equal(t, 100*entity.IndustrialRatePerKw, doc.TotalCost)
	assert.Equal(t, doc.TotalCost, doc.NetCost)
	assert.Equal(t, 0.0, doc.Subsidy)
	assert.Equal(t, 186, doc.PanelCount)
}

func TestRenderQuoteSnapshotOverrides(t *testing.T) {
	doc := RenderQuote(entity.TypeResidential, entity.JSONB{
		"capacity":     "4",
		"price_per_kw": 50000.0,
		"subsidy":      60000.0,
	})

	assert.Equal(t, 4.0, doc.Capacity)
	assert.Equal(t, 200000.0, doc.TotalCost)
	assert.Equal(t, 140000.0, doc.NetCost)
}

func TestRenderQuoteIsSnapshotDriven(t *testing.T) {
	snapshot := entity.JSONB{"client_name": "Ramesh Shah", "capacity": 3.0}
	first := RenderQuote(entity.TypeResidential, snapshot)
	second := RenderQuote(entity.TypeResidential, snapshot)
	assert.Equal(t, first, second)
}

func TestQuotationCreatePersistsComputedAmount(t *testing.T) {
	svc := setupQuotationService(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, "user-001", &CreateQuotationRequest{
		Type: entity.TypeResidential,
		Snapshot: entity.JSONB{
			"client_name": "Ramesh Shah",
			"capacity":    5.0,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ramesh Shah", quote.ClientName)
	assert.Equal(t, entity.QuoteStatusGenerated, quote.Status)
	assert.Equal(t, "₹1,84,345", quote.Amount)
	assert.Equal(t, "user-001", quote.CreatedBy)

	doc, err := svc.Render(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, quote.Amount, doc.Amount)
}

func TestQuotationSnapshotSurvivesReload(t *testing.T) {
	svc := setupQuotationService(t)
	ctx := context.Background()

	snapshot := entity.JSONB{
		"client_name": "Ramesh Shah",
		"phone":       "9876512345",
		"capacity":    5.0,
		"line_items": []interface{}{
			map[string]interface{}{"name": "540W Mono PERC Panel", "qty": 10.0, "price": 14500.0},
			map[string]interface{}{"name": "5kW String Inverter", "qty": 1.0, "price": 45000.0},
			map[string]interface{}{"name": "Mounting Structure", "qty": 1.0, "price": 18000.0},
		},
	}

	quote, err := svc.Create(ctx, "user-001", &CreateQuotationRequest{
		Type:     entity.TypeResidential,
		Snapshot: snapshot,
	})
	require.NoError(t, err)

	stored, err := svc.Get(ctx, quote.ID)
	require.NoError(t, err)

	// the snapshot must come back byte-for-byte equivalent, nested line
	// items included, so re-rendering stays deterministic
	assert.Equal(t, snapshot, stored.DataSnapshot)

	items, ok := stored.DataSnapshot["line_items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 3)
	firstItem, ok := items[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "540W Mono PERC Panel", firstItem["name"])
	assert.Equal(t, 10.0, firstItem["qty"])
}

func TestQuotationUpdateStatus(t *testing.T) {
	svc := setupQuotationService(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, "user-001", &CreateQuotationRequest{
		Type:     entity.TypeIndustrial,
		Snapshot: entity.JSONB{"client_name": "Joshi Textiles", "capacity": 50.0},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, quote.ID, &UpdateQuotationStatusRequest{Status: entity.QuoteStatusAccepted})
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusAccepted, updated.Status)
}

func TestQuotationRenderPDF(t *testing.T) {
	svc := setupQuotationService(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, "user-001", &CreateQuotationRequest{
		Type:     entity.TypeResidential,
		Snapshot: entity.JSONB{"client_name": "Ramesh Shah", "capacity": 5.0, "phone": "9876512345"},
	})
	require.NoError(t, err)

	buf, err := svc.RenderPDF(ctx, quote.ID)
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}

func TestDateRange(t *testing.T) {
	from, to, err := DateRange("all", "", "")
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())

	from, to, err = DateRange("30_days", "", "")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), from, time.Minute)
	assert.WithinDuration(t, time.Now(), to, time.Minute)

	from, to, err = DateRange("this_year", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), from.Year())
	assert.Equal(t, time.January, from.Month())
	assert.Equal(t, 1, from.Day())

	from, to, err = DateRange("custom", "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
	// the end date covers the whole day
	assert.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 999000000, time.UTC), to)

	_, _, err = DateRange("last_week", "", "")
	assert.Error(t, err)
}
