package service

import (
	"context"
	"testing"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLeadService(t *testing.T) (*LeadService, *repository.Repositories) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewLeadService(repos.Lead), repos
}

func TestLeadCreateDefaults(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := context.Background()

	lead, err := svc.Create(ctx, &CreateLeadRequest{Name: "Ramesh Shah", Phone: "9876512345"})
	require.NoError(t, err)

	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	assert.Equal(t, entity.TypeResidential, lead.Type)
	assert.Equal(t, entity.LeadSourceWebsite, lead.Source)
	assert.NotEmpty(t, lead.ID)
}

func TestLeadCreateFromQuoteRequest(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := context.Background()

	lead, err := svc.CreateFromQuoteRequest(ctx, &QuoteRequestInput{
		Name:            "Priya Desai",
		Phone:           "9876554321",
		City:            "Surat",
		BillAmount:      "4500",
		RoofArea:        "600 sq ft",
		PanelPreference: "Mono PERC",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.LeadSourceQuoteRequest, lead.Source)
	assert.Equal(t, "Monthly bill: 4500; Roof area: 600 sq ft; Panel preference: Mono PERC", lead.Notes)
}

func TestLeadConvertCreatesProjectAndMarksWon(t *testing.T) {
	svc, repos := setupLeadService(t)
	ctx := context.Background()

	lead, err := svc.Create(ctx, &CreateLeadRequest{Name: "Ramesh Shah", City: "Rajkot", Capacity: "5"})
	require.NoError(t, err)

	project, err := svc.Convert(ctx, lead.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ramesh Shah", project.ClientName)
	assert.Equal(t, "Rajkot", project.Location)
	assert.Equal(t, 5.0, project.Capacity)
	assert.Equal(t, entity.StageSiteSurvey, project.Stage)
	assert.Equal(t, 10, project.Progress)
	assert.Equal(t, lead.ID, project.LeadID)

	updated, err := repos.Lead.FindByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusWon, updated.Status)

	stored, err := repos.Project.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ClientName, stored.ClientName)
}

func TestLeadConvertTwiceFails(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := context.Background()

	lead, err := svc.Create(ctx, &CreateLeadRequest{Name: "Ramesh Shah", Capacity: "3"})
	require.NoError(t, err)

	_, err = svc.Convert(ctx, lead.ID)
	require.NoError(t, err)

	_, err = svc.Convert(ctx, lead.ID)
	assert.ErrorIs(t, err, ErrLeadAlreadyConverted)
}

func TestLeadConvertGuardsConcurrentSessions(t *testing.T) {
	svc, repos := setupLeadService(t)
	ctx := context.Background()

	lead, err := svc.Create(ctx, &CreateLeadRequest{Name: "Ramesh Shah", Capacity: "5"})
	require.NoError(t, err)

	// Two sessions that both saw the lead as unconverted and went straight
	// to the repository: only the first status update may win.
	first := &entity.Project{ID: "proj-race-1", ClientName: lead.Name, LeadID: lead.ID}
	second := &entity.Project{ID: "proj-race-2", ClientName: lead.Name, LeadID: lead.ID}

	require.NoError(t, repos.Lead.ConvertToProject(ctx, lead.ID, first))

	err = repos.Lead.ConvertToProject(ctx, lead.ID, second)
	assert.ErrorIs(t, err, repository.ErrAlreadyConverted)

	_, err = repos.Project.FindByID(ctx, first.ID)
	assert.NoError(t, err)

	// the losing session's project insert must not survive
	_, err = repos.Project.FindByID(ctx, second.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, total, err := repos.Project.List(ctx, 1, 10, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestLeadConvertUnparseableCapacity(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := context.Background()

	lead, err := svc.Create(ctx, &CreateLeadRequest{Name: "Ramesh Shah", Capacity: "about 5kW"})
	require.NoError(t, err)

	project, err := svc.Convert(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, project.Capacity)
}

func TestLeadUpdateAndDelete(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := context.Background()

	lead, err := svc.Create(ctx, &CreateLeadRequest{Name: "Ramesh Shah"})
	require.NoError(t, err)

	status := entity.LeadStatusQualified
	updated, err := svc.Update(ctx, lead.ID, &UpdateLeadRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusQualified, updated.Status)

	require.NoError(t, svc.Delete(ctx, lead.ID))

	_, err = svc.Get(ctx, lead.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
