package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/owengrv/running-the-numbers/internal/config"
	"github.com/owengrv/running-the-numbers/internal/engine"
	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/internal/server"
	"github.com/owengrv/running-the-numbers/internal/sharelink"
	"github.com/owengrv/running-the-numbers/internal/store"
	"github.com/owengrv/running-the-numbers/pkg/constants"
	"github.com/owengrv/running-the-numbers/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	stateFile := flag.String("state", "", "path to the snapshot file override")
	link := flag.String("link", "", "share link fragment to restore a scenario from")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	exportDir := flag.String("export", "", "directory to export a date-stamped snapshot into")
	serve := flag.Bool("serve", false, "run the HTTP API server instead of one-shot output")
	listen := flag.String("listen", "", "listen address override for the HTTP server")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		runServer(logger, conf, *listen)
		return
	}

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal(fmt.Sprintf("unknown output format %s", outputFormat),
			zap.String("op", "main"),
		)
	}

	statePath := conf.State.File
	if *stateFile != "" {
		statePath = *stateFile
	}
	st := store.New(statePath, logger)

	state := scenario.NewState(conf.ScenarioVariant(), conf.Defaults)
	eng := engine.New(logger, state)

	// A share link takes precedence over the saved snapshot, which in turn
	// takes precedence over the configured defaults.
	if snap, ok := sharelink.Decode(*link); ok {
		eng.Restore(snap)
	} else if snap := st.Load(); snap != nil {
		eng.Restore(*snap)
	}
	eng.SetSaver(st)

	if *exportDir != "" {
		path, err := store.Export(*exportDir, state.Snapshot(), time.Now())
		if err != nil {
			logger.Fatal("failed to export snapshot",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("exported snapshot",
			zap.String("op", "main"),
			zap.String("path", path),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(eng.Derived(), state.Variant, conf.Output.Decimals)
	case constants.OutputFormatCSV:
		output.CsvFormat(eng.Derived(), state.Variant)
	}
}

func runServer(logger *zap.Logger, conf *config.Configuration, listen string) {
	address := conf.Server.Address
	if listen != "" {
		address = listen
	}

	handler := server.NewHandler(logger, conf, conf.UploadSizeBytes(), version)

	logger.Info("starting HTTP server",
		zap.String("op", "main.runServer"),
		zap.String("address", address),
		zap.String("version", version),
	)

	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("HTTP server stopped",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}
}
