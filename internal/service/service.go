package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/config"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services aggregates all business services.
type Services struct {
	Auth      *AuthService
	User      *UserService
	Lead      *LeadService
	Project   *ProjectService
	Inventory *InventoryService
	Team      *TeamService
	Schedule  *ScheduleService
	Quotation *QuotationService
	Document  *DocumentService
	Report    *ReportService
}

// NewServices creates all services. MinIO is optional: when no endpoint is
// configured the document service reports storage as unavailable instead of
// failing startup.
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			zap.L().Warn("minio client init failed, document uploads disabled",
				zap.String("endpoint", cfg.MinIO.Endpoint),
				zap.Error(err))
			minioClient = nil
		}
	}

	return &Services{
		Auth:      NewAuthService(repos.User, rdb, cfg),
		User:      NewUserService(repos.User),
		Lead:      NewLeadService(repos.Lead),
		Project:   NewProjectService(repos.Project, repos.Inventory),
		Inventory: NewInventoryService(repos.Inventory),
		Team:      NewTeamService(repos.Team, repos.Project),
		Schedule:  NewScheduleService(repos.Schedule),
		Quotation: NewQuotationService(repos.Quotation),
		Document:  NewDocumentService(repos.Project, minioClient, cfg.MinIO.Bucket),
		Report:    NewReportService(repos),
	}
}
