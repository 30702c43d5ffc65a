package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civictrack/civictrack/internal/infrastructure/auth"
	"github.com/civictrack/civictrack/internal/infrastructure/config"
	"github.com/civictrack/civictrack/internal/infrastructure/database"
	"github.com/civictrack/civictrack/internal/infrastructure/repository"
	"github.com/civictrack/civictrack/internal/infrastructure/seeds"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

var (
	env        string
	configPath string
	seedFile   string
)

// NewCommand provisions admin and department officer accounts.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or update staff accounts",
		Long: `Read staff users from a YAML file and create them, or promote existing
accounts to the listed role. ${VAR} references in the file are expanded from
the environment. Running it twice is safe.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&seedFile, "file", "f", "configs/seeds/staff.yaml", "Staff seed file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.NewLogger()

	file, err := seeds.Load(seedFile)
	if err != nil {
		return err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	seeder := seeds.NewSeeder(
		repository.NewUserRepository(database.Get()),
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		log.Named("seed"),
	)

	result, err := seeder.Apply(context.Background(), file)
	if err != nil {
		return err
	}

	fmt.Printf("Staff accounts: %d created, %d updated, %d unchanged\n",
		result.Created, result.Updated, result.Unchanged)
	return nil
}
