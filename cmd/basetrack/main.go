package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/localnerve/basetrack/internal/catalog"
	"github.com/localnerve/basetrack/internal/config"
	"github.com/localnerve/basetrack/internal/database"
	"github.com/localnerve/basetrack/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	flagEnvFile string
	flagOutput  string
	flagTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "basetrack",
	Short:         "Manage and inspect basetrack progress data",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagEnvFile, "env", "f", "", "Path to a .env file")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "table", "Output format: table or json")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Timeout for database work")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	if flagEnvFile != "" {
		return config.LoadFile(flagEnvFile)
	}
	return config.Load()
}

// session holds what a data command needs
type session struct {
	cfg     *config.Config
	db      *gorm.DB
	catalog *catalog.Catalog
	gate    *services.AccessGate
}

func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	c, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:     cfg,
		db:      db,
		catalog: c,
		gate:    services.NewAccessGate(database.NewStore(db), cfg.OwnerColumn),
	}, nil
}

func (s *session) close() {
	if err := database.Close(s.db); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), flagTimeout)
}

func jsonOutput() bool {
	return strings.EqualFold(strings.TrimSpace(flagOutput), "json")
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func requireOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return fmt.Errorf("--owner is required")
	}
	return nil
}
