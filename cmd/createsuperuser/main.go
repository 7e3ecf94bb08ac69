package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/services"
)

// superuserEnv keeps the password out of the process arguments.
type superuserEnv struct {
	Password string `env:"FINTRACK_SUPERUSER_PASSWORD,required"`
}

// loadSettings reads the application config and then the password. config.Load
// pulls in .env, so a password kept there is visible to the second step.
func loadSettings() (*config.Config, superuserEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, superuserEnv{}, fmt.Errorf("failed to load config: %w", err)
	}

	var secrets superuserEnv
	if err := env.Parse(&secrets); err != nil {
		return nil, superuserEnv{}, fmt.Errorf("failed to read password: %w", err)
	}
	return cfg, secrets, nil
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("createsuperuser: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	email := fs.String("email", "", "email address of the superuser")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("usage: createsuperuser -email <email> [-first-name <name>] [-last-name <name>]")
	}

	cfg, secrets, err := loadSettings()
	if err != nil {
		return err
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return err
	}
	defer dbManager.Close()

	user, err := services.NewUserService(dbManager.DB()).CreateSuperuser(*email, *firstName, *lastName, secrets.Password)
	if err != nil {
		return err
	}

	logger.Get().Infow("Superuser created", "user_id", user.ID, "email", user.Email)
	return nil
}
