package service

import (
	"context"
	"strings"
	"testing"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/config"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServicesWithoutObjectStorage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	svc := NewServices(repos, nil, &config.Config{})
	require.NotNil(t, svc.Document)

	_, err := svc.Document.Upload(context.Background(), "proj-001", "user-001",
		"site-photo.jpg", "", "image/jpeg", 4, strings.NewReader("data"))
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}
