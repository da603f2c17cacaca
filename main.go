package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"longsd/core"
	"longsd/core/validation"
	"longsd/document"
	"longsd/logging"
	"longsd/metrics"
	"longsd/pipeline"
	"longsd/prompts"
	"longsd/sdruntime"
	"longsd/shutdown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return core.ExitCodeSuccess
	}
	if err != nil {
		return core.ExitCodeError
	}
	if opts.showVersion {
		fmt.Println("longsd", core.VersionInfo())
		return core.ExitCodeSuccess
	}

	// A missing .env is reported by the startup checks
	_ = godotenv.Load()

	cfg, err := core.LoadConfig(opts.configPath)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return core.ExitCodeError
	}
	opts.apply(cfg)

	logger, err := logging.NewLogger(cfg.DevMode, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}

	if code := runStartupValidation(logger, cfg, opts.files); code != core.ExitCodeSuccess {
		logger.Sync()
		return code
	}

	logger.Info("Configuration loaded",
		zap.String("version", core.Version),
		zap.String("root", cfg.Root),
		zap.Strings("documents", opts.files),
		zap.String("sd_backend", cfg.SDBackend),
		zap.String("sd_runtime", sdruntime.GetBackendInfo()),
		zap.Ints("sd_devices", cfg.SDDevices),
		zap.Int("workers", cfg.Workers),
		zap.Bool("overwrite_prompts", cfg.OverwritePrompts),
		zap.Bool("fail_fast", cfg.FailFast),
		zap.String("completion_model", cfg.CompletionModel),
		zap.Duration("sd_timeout", cfg.SDTimeout()),
		zap.Bool("dev_mode", cfg.DevMode),
	)

	mgr := shutdown.NewManager(logger)
	mgr.Register("temp-images", 10,
		shutdown.CleanupTempImages(logger, filepath.Join(cfg.Root, document.ImagesDir)))
	mgr.Register("logger", 90, func(context.Context) error {
		// Syncing a console writer fails on some platforms; nothing to do about it.
		_ = logger.Sync()
		return nil
	})
	mgr.Start()

	store := metrics.NewStore(metrics.StoreConfig{
		TaskHistoryCapacity: 1000,
		Version:             core.Version,
	}, time.Now())
	logger = logger.With(zap.String("run_id", store.RunID()))

	runner := pipeline.NewRunner(
		pipeline.OptionsFromConfig(cfg),
		prompts.NewOpenAICompletionClient(cfg),
		sdruntime.Load,
		store,
		logger,
	)
	runErr := runner.Run(mgr.Context(), opts.files)

	summary := store.Summary()
	logger.Info("Run finished",
		zap.Int("documents", len(summary.Documents)),
		zap.Int64("tasks", summary.Tasks.TotalProcessed),
		zap.Int64("task_errors", summary.Tasks.TotalErrors),
		zap.Duration("elapsed", summary.Elapsed))

	if err := mgr.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown: %v\n", err)
	}

	printSummary(os.Stdout, summary)
	return exitCode(runErr, mgr.ExitCode())
}

// runStartupValidation checks configuration, inputs and the model before
// any document is touched.
//
// Returns the appropriate exit code:
//   - ExitCodeSuccess (0) if all checks pass or only warn
//   - ExitCodeError (1) if any check fails
func runStartupValidation(logger *logging.Logger, cfg *core.Config, names []string) int {
	layout := document.Layout{Root: cfg.Root}

	result := validation.NewValidationSuite("longsd "+core.Version).
		Add("Environment File", validation.EnvFileCheck(".env")).
		Add("Configuration", validation.ConfigCheck(cfg)).
		Add("Source Texts", validation.TextsCheck(layout, names)).
		Add("Disk Space", validation.DiskSpaceCheck(layout, validation.MinFreeImageSpace)).
		Add("Image Model", validation.ModelCheck(cfg, sdruntime.VerifyModelChecksum)).
		Validate()

	for _, step := range result.Steps {
		switch step.Status {
		case validation.StepFailed:
			logger.Error("Startup check failed",
				zap.String("step", step.Name),
				zap.String("message", step.Message),
				zap.String("error_code", core.GetErrorCode(step.Error)),
				zap.Error(step.Error))
		case validation.StepWarning:
			logger.Warn("Startup check warning",
				zap.String("step", step.Name),
				zap.String("message", step.Message),
				zap.Error(step.Error))
		}
	}

	if !result.Success {
		return core.ExitCodeError
	}
	logger.Debug("Startup checks complete", zap.String("summary", result.Summary()))
	return core.ExitCodeSuccess
}

// exitCode prefers the signal exit code over the outcome of the batch.
func exitCode(runErr error, signalCode int) int {
	if core.IsSignalExit(signalCode) {
		return signalCode
	}
	if runErr != nil {
		return core.ExitCodeError
	}
	return core.ExitCodeSuccess
}
