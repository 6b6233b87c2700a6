package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kevin07696/worldnet-gateway/internal/adapters/ports"
	"github.com/kevin07696/worldnet-gateway/internal/adapters/transport"
	"github.com/kevin07696/worldnet-gateway/internal/adapters/worldnet"
	"github.com/kevin07696/worldnet-gateway/internal/config"
	pkgerrors "github.com/kevin07696/worldnet-gateway/pkg/errors"
	pkghttp "github.com/kevin07696/worldnet-gateway/pkg/http"
	"github.com/kevin07696/worldnet-gateway/pkg/logging"
	"github.com/kevin07696/worldnet-gateway/pkg/observability"
)

func main() {
	var (
		action   = flag.String("action", "", "Operation to perform (see usage)")
		jsonFile = flag.String("json", "", "JSON file with the operation parameters")
	)
	flag.Parse()

	if *action == "" {
		fmt.Println("Usage: worldnet -action=<action> -json=<params.json>")
		fmt.Println("Actions:")
		for _, name := range actionNames() {
			fmt.Printf("  %s\n", name)
		}
		os.Exit(1)
	}

	os.Exit(run(*action, *jsonFile))
}

func run(action, jsonFile string) int {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Port > 0 {
		metricsServer := observability.StartMetricsServer(cfg.Metrics.Port)
		defer observability.ShutdownMetricsServer(metricsServer)
		logger.Info("Metrics server started", ports.Int("port", cfg.Metrics.Port))
	}

	params, err := readParams(jsonFile)
	if err != nil {
		logger.Error("Failed to read parameters", ports.Err(err))
		return 1
	}

	secret, err := resolveSecret(ctx, cfg, logger.Zap())
	if err != nil {
		logger.Error("Failed to resolve terminal secret", ports.Err(err))
		return 1
	}

	clientCfg, err := cfg.Gateway.ClientConfig(secret)
	if err != nil {
		logger.Error("Invalid gateway configuration", ports.Err(err))
		return 1
	}

	httpClient := pkghttp.NewHTTPClient(pkghttp.GatewayClientConfig(), cfg.Gateway.RequestTimeout())
	client, err := worldnet.NewClient(clientCfg, transport.NewHTTPTransport(httpClient, logger), worldnet.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to create gateway client", ports.Err(err))
		return 1
	}

	resp, err := dispatch(ctx, client, action, params)
	if err != nil {
		printJSON(os.Stderr, map[string]string{
			"error":    err.Error(),
			"category": string(pkgerrors.CategoryOf(err)),
		})
		return 1
	}

	printJSON(os.Stdout, map[string]interface{}{
		"operation": resp.Operation,
		"response":  resp.Map(),
	})
	return 0
}

func readParams(jsonFile string) ([]byte, error) {
	if jsonFile == "" {
		return nil, pkgerrors.NewValidationError("json", "a parameters file is required")
	}
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", jsonFile, err)
	}
	return data, nil
}

func printJSON(f *os.File, v interface{}) {
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
