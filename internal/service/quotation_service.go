package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
)

// QuotationService generates and manages quote documents. The document is a
// pure function of the stored snapshot: regenerating a quote years later
// yields the same figures even if defaults have moved on.
type QuotationService struct {
	repo *repository.QuotationRepository
}

func NewQuotationService(repo *repository.QuotationRepository) *QuotationService {
	return &QuotationService{repo: repo}
}

// CreateQuotationRequest is the quote generation payload. Snapshot holds
// the full form state; figures the snapshot omits fall back to defaults.
type CreateQuotationRequest struct {
	Type     string       `json:"type" binding:"required,oneof=Residential Industrial"`
	Snapshot entity.JSONB `json:"snapshot" binding:"required"`
}

// UpdateQuotationStatusRequest moves a quote through its lifecycle.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Generated Sent Accepted Rejected"`
}

// QuoteDocument is the rendered view of a quotation.
type QuoteDocument struct {
	Type       string  `json:"type"`
	ClientName string  `json:"client_name"`
	Phone      string  `json:"phone"`
	Address    string  `json:"address"`
	Capacity   float64 `json:"capacity"`
	PanelCount int     `json:"panel_count"`
	TotalCost  float64 `json:"total_cost"`
	Subsidy    float64 `json:"subsidy"`
	NetCost    float64 `json:"net_cost"`
	Amount     string  `json:"amount"`
}

// FormatINR renders an amount with Indian digit grouping: the last three
// digits, then groups of two ("₹1,83,641").
func FormatINR(amount float64) string {
	n := int64(math.Round(amount))
	negative := n < 0
	if negative {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = ""
		for _, g := range groups {
			s += g + ","
		}
		s += tail
	}
	if negative {
		s = "-" + s
	}
	return "₹" + s
}

func snapFloat(snapshot entity.JSONB, key string, fallback float64) float64 {
	switch v := snapshot[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func snapString(snapshot entity.JSONB, key string) string {
	if v, ok := snapshot[key].(string); ok {
		return v
	}
	return ""
}

// RenderQuote computes the quote document from a snapshot alone.
func RenderQuote(quoteType string, snapshot entity.JSONB) QuoteDocument {
	doc := QuoteDocument{
		Type:       quoteType,
		ClientName: snapString(snapshot, "client_name"),
		Phone:      snapString(snapshot, "phone"),
		Address:    snapString(snapshot, "address"),
		Capacity:   snapFloat(snapshot, "capacity", 0),
	}

	if quoteType == entity.TypeIndustrial {
		rate := snapFloat(snapshot, "rate", entity.IndustrialRatePerKw)
		doc.TotalCost = doc.Capacity * rate
		doc.NetCost = doc.TotalCost
	} else {
		pricePerKw := snapFloat(snapshot, "price_per_kw", entity.ResidentialPricePerKw)
		doc.Subsidy = snapFloat(snapshot, "subsidy", entity.ResidentialSubsidy)
		doc.TotalCost = doc.Capacity * pricePerKw
		doc.NetCost = doc.TotalCost - doc.Subsidy
	}
	doc.PanelCount = int(math.Ceil(doc.Capacity / entity.PanelWattageKw))
	doc.Amount = FormatINR(doc.NetCost)
	return doc
}

// Create generates a quote. The amount is computed server-side from the
// snapshot and stored alongside it.
func (s *QuotationService) Create(ctx context.Context, userID string, req *CreateQuotationRequest) (*entity.Quotation, error) {
	doc := RenderQuote(req.Type, req.Snapshot)

	quote := &entity.Quotation{
		ID:           generateID(),
		ClientName:   doc.ClientName,
		Type:         req.Type,
		Amount:       doc.Amount,
		Status:       entity.QuoteStatusGenerated,
		Capacity:     doc.Capacity,
		Address:      doc.Address,
		DataSnapshot: req.Snapshot,
		CreatedBy:    userID,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quotation: %w", err)
	}
	return quote, nil
}

func (s *QuotationService) Get(ctx context.Context, id string) (*entity.Quotation, error) {
	return s.repo.FindByID(ctx, id)
}

// Render re-renders the stored quote from its snapshot.
func (s *QuotationService) Render(ctx context.Context, id string) (*QuoteDocument, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := RenderQuote(quote.Type, quote.DataSnapshot)
	return &doc, nil
}

// DateRange resolves a named range into [from, to]. A custom "to" date is
// extended to the end of that day.
func DateRange(name, fromStr, toStr string) (from, to time.Time, err error) {
	now := time.Now()
	switch name {
	case "", "all":
		return time.Time{}, time.Time{}, nil
	case "30_days":
		return now.AddDate(0, 0, -30), now, nil
	case "this_year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), now, nil
	case "custom":
		if fromStr != "" {
			from, err = time.Parse(dateLayout, fromStr)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %w", err)
			}
		}
		if toStr != "" {
			to, err = time.Parse(dateLayout, toStr)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %w", err)
			}
			to = to.Add(24*time.Hour - time.Millisecond)
		}
		return from, to, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("unknown date range %q", name)
}

func (s *QuotationService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}, rangeName, fromStr, toStr string) (map[string]interface{}, error) {
	from, to, err := DateRange(rangeName, fromStr, toStr)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() {
		filters["from"] = from
	}
	if !to.IsZero() {
		filters["to"] = to
	}

	quotes, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	return map[string]interface{}{
		"items":     quotes,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}, nil
}

func (s *QuotationService) UpdateStatus(ctx context.Context, id string, req *UpdateQuotationStatusRequest) (*entity.Quotation, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Status = req.Status
	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("update quotation: %w", err)
	}
	return quote, nil
}

func (s *QuotationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// RenderPDF renders the quote as a PDF, reading only the snapshot.
func (s *QuotationService) RenderPDF(ctx context.Context, id string) (*bytes.Buffer, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := RenderQuote(quote.Type, quote.DataSnapshot)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Tara Solar Energy")
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s Solar Quotation", doc.Type))
	pdf.Ln(12)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(60, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Client", doc.ClientName)
	if doc.Phone != "" {
		line("Phone", doc.Phone)
	}
	if doc.Address != "" {
		line("Address", doc.Address)
	}
	line("System Capacity", fmt.Sprintf("%.2f kW", doc.Capacity))
	line("Panel Count", strconv.Itoa(doc.PanelCount))
	pdf.Ln(4)
	// the rupee sign is outside the core font set, so figures use "Rs."
	line("Total Cost", fmt.Sprintf("Rs. %.0f", doc.TotalCost))
	if doc.Type != entity.TypeIndustrial {
		line("Subsidy", fmt.Sprintf("Rs. %.0f", doc.Subsidy))
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(60, 10, "Net Payable", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Rs. %.0f", doc.NetCost), "T", 1, "L", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Quotation valid for 30 days. Subsidy subject to government approval.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return &buf, nil
}
