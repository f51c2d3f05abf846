package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/next-dorm-trust/config"
	"github.com/navbryce/next-dorm-trust/controllers"
	"github.com/navbryce/next-dorm-trust/db/planetscale"
	"github.com/navbryce/next-dorm-trust/routes"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("error loading configuration: ", err)
	}

	logger, err := buildLogger(cfg.GinMode)
	if err != nil {
		log.Fatal("error building logger: ", err)
	}
	defer logger.Sync()

	database, err := planetscale.GetDatabase(&planetscale.Config{
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Host:     cfg.DBHost,
		Name:     cfg.DBName,
	})
	if err != nil {
		log.Fatal("received err when attempting to connect to DB: ", err)
	}
	defer database.Close()

	if err = configureFirebaseCredentials(); err != nil {
		log.Fatal("an error occurred while configuring firebase credentials: ", err)
	}
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase: %v\n", err)
	}
	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Fatal("error initializing auth client: ", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FEOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	guard := controllers.NewOwnershipGuard()
	reportController := controllers.NewReportController(database, logger)
	queueController := controllers.NewQueueController(database, logger)
	escalationController := controllers.NewEscalationController(database, logger)
	appealController := controllers.NewAppealController(database, logger)
	banController := controllers.NewBanController(database, logger)
	actionController := controllers.NewActionController(database, logger)
	moderatorController := controllers.NewModeratorController(database, guard, logger)
	adminController := controllers.NewAdminController(database, guard, logger)
	auditController := controllers.NewAuditController(database)

	routes.AddHealthRoutes(&r.RouterGroup)
	routes.AddReportRoutes(&r.RouterGroup, database, reportController, authClient)
	routes.AddQueueRoutes(&r.RouterGroup, database, queueController, authClient)
	routes.AddEscalationRoutes(&r.RouterGroup, database, escalationController, authClient)
	routes.AddAppealRoutes(&r.RouterGroup, database, appealController, authClient)
	routes.AddBanRoutes(&r.RouterGroup, database, banController, authClient)
	routes.AddActionRoutes(&r.RouterGroup, database, actionController, authClient)
	routes.AddModeratorRoutes(&r.RouterGroup, database, moderatorController, authClient)
	routes.AddAdminRoutes(&r.RouterGroup, database, adminController, auditController, authClient)

	logger.Info("starting trust service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("error when attempting to run web server: ", err)
	}
}

func buildLogger(ginMode string) (*zap.Logger, error) {
	if ginMode == gin.ReleaseMode {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Printf("Credentials path detected in env. Expecting credentials to be at %v\n", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Println("Credentials JSON string detected in env.")
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 400)
		if err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
