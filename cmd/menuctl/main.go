// Command menuctl runs maintenance tasks against the menu database:
// migrations, reference data, bulk menu imports and schema diagnostics.
package main

import (
	"fmt"
	"os"

	"digital-menu-api/config"
	applog "digital-menu-api/logger"
	"digital-menu-api/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "menuctl",
	Short:         "Digital menu maintenance tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = applog.Init(cfg.Server.Env, viper.GetString("log_level"))
	},
}

var (
	cfg    *config.Config
	logger *zap.Logger
)

func init() {
	cfg = config.Load()

	rootCmd.PersistentFlags().String("database-url", cfg.DB.URL, "Postgres URL or SQLite file path.")
	viper.BindEnv("database_url", "DATABASE_URL")
	viper.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))

	rootCmd.PersistentFlags().String("log-level", cfg.Log.Level, "Log level: debug, info, warn or error.")
	viper.BindEnv("log_level", "LOG_LEVEL")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		migrateCmd,
		applySQLCmd,
		seedAllergensCmd,
		seedMenuCmd,
		importSectionCmd,
		checkDishesCmd,
		diagCmd,
	)
}

// openStore connects with the URL resolved from flag, env or .env, in that order
func openStore() (*store.Store, error) {
	dbCfg := cfg.DB
	if url := viper.GetString("database_url"); url != "" {
		dbCfg.URL = url
	}
	db, err := config.OpenDB(dbCfg)
	if err != nil {
		return nil, err
	}
	return store.New(db), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
			logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	if logger != nil {
		logger.Sync()
	}
}
