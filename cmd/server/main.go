package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/gin-gonic/gin"

	"churn_backend/internal/app/router"
	"churn_backend/internal/config"
	authadapters "churn_backend/internal/feature/auth/adapters"
	authhandler "churn_backend/internal/feature/auth/transport/handler"
	authusecase "churn_backend/internal/feature/auth/usecase"
	"churn_backend/internal/feature/churn/adapters/artifactstore"
	churndomain "churn_backend/internal/feature/churn/domain"
	churnhandler "churn_backend/internal/feature/churn/transport/handler"
	churnusecase "churn_backend/internal/feature/churn/usecase"
	"churn_backend/internal/platform/db"
	jwtmw "churn_backend/internal/platform/jwt"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: config.yaml in cwd)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	gin.SetMode(cfg.Server.Mode)

	if cfg.JWT.Secret == "" {
		log.Println("[WARN] JWT secret is not set. Set a strong secret in production.")
	}

	// db
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	// Repository / store
	userRepo := authadapters.NewUserSQLite(gdb)
	artifactStore := artifactstore.NewFileStore(cfg.Churn.ArtifactPath)

	// Usecase
	tokenGen := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.TokenTTL())
	authUC := authusecase.NewAuthUsecase(userRepo, tokenGen, cfg.Security.BcryptCost)
	churnUC := churnusecase.NewChurnUsecase(artifactStore)

	// Load the persisted artifact. Training only happens through the admin
	// endpoint or cmd/train, never implicitly at startup.
	ctx := context.Background()
	if _, err := churnUC.LoadArtifact(ctx); err != nil {
		if errors.Is(err, churndomain.ErrArtifactNotFound) {
			log.Println("[WARN] No trained model artifact found. /predict will return 503 until training runs.")
		} else {
			log.Fatal(err)
		}
	}

	// Bootstrap admin account, if configured and absent.
	if cfg.Security.AdminUsername != "" {
		if _, err := authUC.GetUser(ctx, cfg.Security.AdminUsername); errors.Is(err, authusecase.ErrUserNotFound) {
			if cfg.Security.AdminPassword == "" {
				log.Fatal("admin_username is set but admin_password is empty")
			}
			if _, err := authUC.CreateUser(ctx, cfg.Security.AdminUsername, cfg.Security.AdminPassword, true); err != nil {
				log.Fatal("failed to create admin user: ", err)
			}
			log.Printf("created admin user %q", cfg.Security.AdminUsername)
		}
	}

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	adminH := authhandler.NewAdminUserHandler(authUC)
	churnH := churnhandler.NewChurnHandler(churnUC, cfg.Churn.TrainingCSVPath)

	r := router.NewRouter(authH, adminH, churnH, cfg.JWT.Secret)

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
