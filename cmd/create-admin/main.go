// Command create-admin seeds the initial admin user. Run once against a
// fresh database:
//
//	go run ./cmd/create-admin -email admin@bank.example -name "Bank Admin" -password <secret>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kyc-onboard.backend/internal/config"
	"kyc-onboard.backend/internal/domain/entities"
	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/internal/infrastructure/models"
	"kyc-onboard.backend/internal/infrastructure/repositories"
	"kyc-onboard.backend/pkg/crypto"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
)

func main() {
	email := flag.String("email", "", "admin email address")
	name := flag.String("name", "", "admin display name")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if err := run(*email, *name, *password); err != nil {
		log.Fatal(err)
	}
}

func run(email, name, password string) error {
	if email == "" || name == "" || password == "" {
		return errors.New("email, name and password are required")
	}

	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := loadCfg()

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := createAdmin(context.Background(), repositories.NewUserRepository(db), email, name, password); err != nil {
		return err
	}

	log.Printf("Admin user %q created successfully", email)
	return nil
}

// createAdmin inserts a pre-approved admin user. The document reference is
// a fixed marker so admin records never point at real uploads.
func createAdmin(ctx context.Context, repo *repositories.UserRepository, email, name, password string) error {
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("admin user %q already exists", email)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		KYCStatus:    entities.KYCApproved,
		KYCDocument:  null.StringFrom("Internal Admin Record"),
	}
	if err := repo.Create(ctx, admin); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return fmt.Errorf("admin user %q already exists", email)
		}
		return err
	}
	return nil
}
