// @title           Gatekeeper HTTP Service API
// @version         1.0
// @description     Visitor and access gatekeeping service for gated residential societies

// @contact.name   API Support
// @contact.email  support@gatekeeper.local

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gatekeeper-http-service/config"
	"gatekeeper-http-service/models"
	"gatekeeper-http-service/routes"
)

func main() {
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	// Missing .env is fine, variables may come from the environment
	if err := godotenv.Load(); err != nil {
		config.Warning("could not load .env file: %v", err)
	} else {
		config.Info(".env file loaded")
	}

	cfg := config.GetConfig()

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if cfg.DBMigrationMode == "drop" {
		log.Println("warning: running in drop mode, all tables will be dropped and recreated")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("drop and recreate failed: %v", err)
		}
	} else {
		if err := autoMigrate(db); err != nil {
			log.Fatalf("auto migration failed: %v", err)
		}
	}

	ensureAdminExists(db, cfg)

	r := routes.SetupRouter(db, cfg)

	port := cfg.ServerPort
	if port == "" {
		port = "8080"
	}

	config.Info("server listening on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		config.Error("server failed: %v", err)
		os.Exit(1)
	}
}

// initDB opens the database connection
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fmt.Println("Database connection established")
	return db, nil
}

// autoMigrate migrates all models (adds new columns and tables only)
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Society{},
		&models.Building{},
		&models.Flat{},
		&models.User{},
		&models.Resident{},
		&models.Visitor{},
		&models.VisitorLog{},
		&models.VisitorApproval{},
		&models.PreApproval{},
		&models.FrequentVisitor{},
		&models.DomesticHelp{},
		&models.DailyHelpLog{},
		&models.AccessLog{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables drops every table and migrates from scratch
func dropAndRecreateTables(db *gorm.DB) error {
	log.Println("warning: dropping and recreating all tables, all data will be lost")

	db.Exec("SET FOREIGN_KEY_CHECKS = 0")
	defer db.Exec("SET FOREIGN_KEY_CHECKS = 1")

	var tables []string
	err := db.Raw("SHOW TABLES").Scan(&tables).Error
	if err != nil {
		return fmt.Errorf("failed to get table names: %w", err)
	}

	for _, table := range tables {
		log.Printf("dropping table: %s", table)
		err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)).Error
		if err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	log.Println("recreating all tables")
	return autoMigrate(db)
}

// ensureAdminExists creates a default admin account on first boot
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)

	if count == 0 {
		admin := models.User{
			FullName: "Administrator",
			Email:    "admin@gatekeeper.local",
			Phone:    "1234567890",
			Password: cfg.DefaultAdminPassword,
			Role:     models.RoleAdmin,
		}

		// Password is hashed by the model's BeforeCreate hook
		result := db.Create(&admin)
		if result.Error != nil {
			log.Printf("could not create default admin: %v", result.Error)
			return
		}

		log.Println("default admin account created (email: admin@gatekeeper.local)")
	}
}
