package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v3/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/zdziszkee/bank-directory/internal/affiliations"
	handler "github.com/zdziszkee/bank-directory/internal/api/handlers"
	"github.com/zdziszkee/bank-directory/internal/api/router"
	"github.com/zdziszkee/bank-directory/internal/compatibility"
	config "github.com/zdziszkee/bank-directory/internal/configurations"
	"github.com/zdziszkee/bank-directory/internal/metrics"
	jsonreader "github.com/zdziszkee/bank-directory/internal/readers/json"
	service "github.com/zdziszkee/bank-directory/internal/services"
)

var logLevels = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"fatal": log.LevelFatal,
}

// loadAffiliations returns the operator table when a file is configured, the embedded one otherwise
func loadAffiliations(path string) (*affiliations.Table, error) {
	if path == "" {
		return affiliations.Default()
	}
	return affiliations.LoadFile(path)
}

// loadSnapshot reads the partner directory file and checks it decodes
func loadSnapshot(path string, reader *jsonreader.JSONDirectoryReader) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory file %s: %w", path, err)
	}
	doc, err := reader.ReadDirectory(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory file %s: %w", path, err)
	}
	log.Infof("Loaded directory %s with %d banks (created %s)", doc.MessageID, len(doc.Banks), doc.MessageCreateDateTime)
	return raw, nil
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	directoryFile := flag.String("directory", "", "Path to the partner bank directory JSON file")
	affiliationsFile := flag.String("affiliations", "", "Path to the bank affiliations file (.json or .csv)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override config with command line flags if provided
	if *directoryFile != "" {
		cfg.Data.DirectoryFile = *directoryFile
	}
	if *affiliationsFile != "" {
		cfg.Data.AffiliationsFile = *affiliationsFile
	}

	log.SetLevel(logLevels[strings.ToLower(cfg.Log.Level)])

	table, err := loadAffiliations(cfg.Data.AffiliationsFile)
	if err != nil {
		log.Fatalf("Failed to load bank affiliations: %v", err)
	}
	log.Infof("Loaded %d bank affiliations", table.Len())

	reader := &jsonreader.JSONDirectoryReader{}
	snapshot, err := loadSnapshot(cfg.Data.DirectoryFile, reader)
	if err != nil {
		log.Fatalf("Failed to load bank directory: %v", err)
	}

	evaluator := compatibility.New(cfg.Matrix(), compatibility.WithExtraIdentifierCountries(cfg.Payment.ExtraIdentifierCountries...))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	directoryService := service.NewDirectoryService(table, evaluator, reader, metrics.New(reg))
	directoryHandler := handler.NewDirectoryHandler(directoryService, snapshot, cfg.Payment.DefaultCountries)
	app := router.SetupRoutes(directoryHandler, reg, cfg.Log.Format)

	// Start server in a goroutine so we can handle graceful shutdown
	go func() {
		log.Infof("Starting %s on %s", cfg.AppName, cfg.Server.Address)
		if err := app.Listen(cfg.Server.Address); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting")
}
