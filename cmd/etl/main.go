// Command etl runs the lottery ETL: it loads (or fetches) the raw
// multi-lottery document, partitions it per product, and pushes every batch
// through cleaning, feature derivation and persistence.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/config"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/metrics"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/metrics/prompush"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/pipeline"

	// register all storage backends with the factory.
	_ "github.com/PauloHMTeixeira/etl-loteria-federal/internal/storage/all"
)

func main() {
	var (
		cfgPath           string
		datasetPath       string
		dsn               string
		storageKind       string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipeline.json", "pipeline config JSON path")
	flag.StringVar(&datasetPath, "dataset", "", "raw dataset path (overrides source.file.path)")
	flag.StringVar(&dsn, "dsn", "", "storage DSN (overrides storage.db.dsn)")
	flag.StringVar(&storageKind, "storage", "", "storage kind (overrides storage.kind)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend (pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	spec, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if datasetPath != "" {
		spec.Source.Kind = "file"
		spec.Source.File.Path = datasetPath
	}
	if dsn != "" {
		spec.Storage.DB.DSN = dsn
	}
	if storageKind != "" {
		spec.Storage.Kind = storageKind
	}

	issues := config.ValidatePipeline(spec)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Fatal().Str("config", cfgPath).Msg("configuration is invalid")
	}
	if validate {
		log.Info().Str("config", cfgPath).Msg("configuration is valid")
		return
	}

	// Metrics backend: flag → env → none.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		jobName := spec.Job
		if jobName == "" {
			jobName = "loterias_etl"
		}
		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Warn().Err(err).Msg("metrics backend init failed; metrics disabled")
		} else {
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Warn().Err(err).Msg("metrics flush failed")
				}
			}()
		}
	case "", "none":
		// nop backend remains
	default:
		log.Warn().Str("backend", backendName).Msg("unknown metrics backend; metrics disabled")
	}

	start := time.Now()
	runner := pipeline.Runner{Spec: spec, Log: log}
	if _, err := runner.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("done")
}
