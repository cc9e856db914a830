package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/config"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/handler"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/middleware"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	zapLogger.Info("Starting tara-solar-erp service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services, cfg)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Lead{},
		&entity.Project{},
		&entity.ProjectMaterial{},
		&entity.ProjectDocument{},
		&entity.InventoryItem{},
		&entity.StockMovement{},
		&entity.Team{},
		&entity.Job{},
		&entity.ScheduleTask{},
		&entity.Quotation{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		// no login required
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// public website intake
		v1.POST("/public/quote-requests", h.Lead.QuoteRequest)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			authorized.GET("/dashboard", h.Report.Dashboard)
			authorized.GET("/reports", h.Report.Report)

			leads := authorized.Group("/leads")
			{
				leads.GET("", h.Lead.List)
				leads.POST("", h.Lead.Create)
				leads.GET("/:id", h.Lead.Get)
				leads.PUT("/:id", h.Lead.Update)
				leads.DELETE("/:id", h.Lead.Delete)
				leads.POST("/:id/convert", h.Lead.Convert)
			}

			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Project.List)
				projects.POST("", h.Project.Create)
				projects.GET("/:id", h.Project.Get)
				projects.PUT("/:id", h.Project.Update)
				projects.DELETE("/:id", h.Project.Delete)

				projects.GET("/:id/materials", h.Project.ListMaterials)
				projects.POST("/:id/materials", h.Project.AllocateMaterial)

				projects.GET("/:id/documents", h.Document.List)
				projects.POST("/:id/documents", h.Document.Upload)
				projects.GET("/:id/documents/:docId/download", h.Document.Download)
				projects.DELETE("/:id/documents/:docId", h.Document.Delete)
			}

			inventory := authorized.Group("/inventory")
			{
				inventory.GET("", h.Inventory.List)
				inventory.POST("", h.Inventory.Create)
				inventory.GET("/alerts", h.Inventory.Alerts)
				inventory.GET("/movements", h.Inventory.Movements)
				inventory.GET("/export", h.Inventory.Export)
				inventory.GET("/:id", h.Inventory.Get)
				inventory.PUT("/:id", h.Inventory.Update)
				inventory.DELETE("/:id", h.Inventory.Delete)
				inventory.POST("/:id/restock", h.Inventory.Restock)
			}

			teams := authorized.Group("/teams")
			{
				teams.GET("", h.Team.List)
				teams.POST("", h.Team.Create)
				teams.GET("/stats", h.Team.Stats)
				teams.GET("/:id", h.Team.Get)
				teams.PUT("/:id", h.Team.Update)
				teams.DELETE("/:id", h.Team.Delete)
				teams.POST("/:id/assign", h.Team.Assign)
				teams.POST("/:id/release", h.Team.Release)
			}

			schedule := authorized.Group("/schedule")
			{
				schedule.GET("/jobs/week", h.Schedule.Week)
				schedule.POST("/jobs", h.Schedule.CreateJob)
				schedule.PUT("/jobs/:id", h.Schedule.UpdateJob)
				schedule.DELETE("/jobs/:id", h.Schedule.DeleteJob)

				schedule.GET("/gantt", h.Schedule.Gantt)
				schedule.POST("/tasks", h.Schedule.CreateTask)
				schedule.PUT("/tasks/:id", h.Schedule.UpdateTask)
				schedule.DELETE("/tasks/:id", h.Schedule.DeleteTask)
			}

			quotations := authorized.Group("/quotations")
			{
				quotations.GET("", h.Quotation.List)
				quotations.POST("", h.Quotation.Create)
				quotations.GET("/:id", h.Quotation.Get)
				quotations.GET("/:id/render", h.Quotation.Render)
				quotations.GET("/:id/pdf", h.Quotation.PDF)
				quotations.PATCH("/:id/status", h.Quotation.UpdateStatus)
				quotations.DELETE("/:id", h.Quotation.Delete)
			}

			// account administration is admin-only
			users := authorized.Group("/users")
			users.Use(middleware.RequireRole("Admin"))
			{
				users.GET("", h.User.List)
				users.POST("", h.User.Create)
				users.GET("/:id", h.User.Get)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
				users.POST("/:id/reset-password", h.User.ResetPassword)
			}
		}
	}
}
