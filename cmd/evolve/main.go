package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ducminhle1904/bitstring-ga/cmd/common"
	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/internal/logger"
	"github.com/ducminhle1904/bitstring-ga/internal/monitoring"
	"github.com/ducminhle1904/bitstring-ga/internal/storage"
	"github.com/ducminhle1904/bitstring-ga/pkg/config"
	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
	"github.com/ducminhle1904/bitstring-ga/pkg/reporting"
)

const appName = "evolve"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the command and returns the process exit code
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stdout)
	flags := NewEvolveFlags(fs)
	formatter := newUsageFormatter()
	fs.Usage = func() { formatter.PrintUsage(stdout, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if common.CheckHelpAndVersion(stdout, flags.Common, formatter, fs) {
		return 0
	}

	log := common.NewLogger()
	log.Out = stdout
	common.SetupLogger(log, flags.Common)

	if err := flags.Validate(); err != nil {
		log.Error("%v", err)
		return 1
	}

	if err := common.NewEnvLoader(log).LoadEnvFile(*flags.Common.EnvFile); err != nil {
		log.Error("Failed to load environment: %v", err)
		return 1
	}

	cfg, err := loadConfiguration(fs, flags)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runEvolution(ctx, cfg, flags, log, stdout); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

func newUsageFormatter() *common.UsageFormatter {
	return common.NewUsageFormatter(appName, "Evolve fixed-length bit strings with a genetic algorithm").
		AddExample(appName+" -fitness alternating -length 8 -population 50 -generations 200 -target 7",
			"Run until an alternating 8-bit pattern is found").
		AddExample(appName+" -fitness kicker -length 6 -mutation-rate 0.2 -store sqlite -xlsx history.xlsx",
			"Chase the all-zero kicker and keep the history in sqlite and Excel").
		AddExample(appName+" -config run.json -metrics-addr :9090",
			"Run from a configuration file and expose Prometheus metrics")
}

// loadConfiguration layers defaults, the config file, GA_* variables and explicit flags, then validates
func loadConfiguration(fs *flag.FlagSet, flags *EvolveFlags) (*config.RunConfig, error) {
	manager := config.NewRunConfigManager()

	cfg, err := manager.LoadConfig(*flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	flags.Apply(fs, cfg)

	if err := manager.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session owns every optional output of a run
type session struct {
	cfg      *config.RunConfig
	log      *common.Logger
	console  *reporting.ConsoleReporter
	excel    *reporting.ExcelReporter
	fileLog  *logger.Logger
	health   *monitoring.HealthChecker
	server   *monitoring.Server
	store    storage.Store
	recorder *storage.Recorder

	reporters []optimization.Reporter
}

func openSession(ctx context.Context, cfg *config.RunConfig, flags *EvolveFlags, log *common.Logger, stdout io.Writer) (*session, error) {
	s := &session{cfg: cfg, log: log}

	if !*flags.Common.Silent {
		s.console = reporting.NewConsoleReporter(stdout, cfg.GA.MaxGenerations, cfg.Output.ProgressSegments)
		s.console.SetEmojis(!*flags.Common.NoEmojis)
		s.reporters = append(s.reporters, s.console)
	}

	if cfg.Output.ExcelPath != "" {
		s.excel = reporting.NewExcelReporter()
		s.reporters = append(s.reporters, s.excel)
	}

	if cfg.Output.LogDir != "" {
		fileLog, err := logger.NewLogger(cfg.Output.LogDir, cfg.Name)
		if err != nil {
			return s, err
		}
		s.fileLog = fileLog
		s.reporters = append(s.reporters, fileLog)
		log.Debug("Logging to %s", fileLog.GetLogPath())
	}

	if cfg.Metrics.Address != "" {
		s.health = monitoring.NewHealthChecker()
		s.server = monitoring.NewServer(cfg.Metrics.Address, s.health)
		if err := s.server.Start(); err != nil {
			return s, fmt.Errorf("failed to start metrics server: %w", err)
		}
		s.reporters = append(s.reporters, monitoring.NewMetricsReporter(cfg.Name), s.health)
		log.Info("Metrics available at http://%s/metrics", s.server.Addr())
	}

	if backend := strings.ToLower(cfg.Storage.Backend); backend != "" && backend != config.DefaultStoreBackend {
		if backend == "sqlite" {
			if err := reporting.NewDefaultPathManager().EnsureDirectoryExists(cfg.Storage.SQLitePath); err != nil {
				return s, err
			}
		}
		store, err := storage.NewStore(backend, cfg.Storage.SQLitePath)
		if err != nil {
			return s, err
		}
		s.store = store
		// store writes outlive a cancelled run so the outcome is still recorded
		storeCtx := context.WithoutCancel(ctx)
		if err := store.Init(storeCtx); err != nil {
			return s, fmt.Errorf("failed to initialize %s store: %w", backend, err)
		}
		recorder, err := storage.NewRecorder(storeCtx, store, storage.RunRecord{
			Name:    cfg.Name,
			Fitness: cfg.Fitness.Name,
			Config:  cfg.EngineConfig(),
		})
		if err != nil {
			return s, err
		}
		s.recorder = recorder
		s.reporters = append(s.reporters, recorder)
	}

	return s, nil
}

func (s *session) reporter() optimization.Reporter {
	return reporting.Multi(s.reporters...)
}

func (s *session) runID() string {
	if s.recorder == nil {
		return ""
	}
	return s.recorder.RunID()
}

// outputDir is where bare report file names are placed
func (s *session) outputDir() string {
	if s.cfg.Output.Directory != "" {
		return s.cfg.Output.Directory
	}
	return reporting.DefaultOutputDir(s.cfg.Name, s.cfg.Fitness.Name)
}

// finish records the outcome everywhere it was requested and returns the first output error
func (s *session) finish(summary reporting.RunSummary, runErr error, flags *EvolveFlags, stdout io.Writer) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	reportFailed := func(format, path string, err error) {
		monitoring.RecordError("reporting")
		keep(gaerrors.NewReportingError(format, "write", err).WithContext("path", path))
	}

	result := summary.Result
	monitoring.RecordRunFinished(result.State, runErr)
	if s.health != nil {
		s.health.SetState(result.State)
	}

	if s.recorder != nil {
		if err := s.recorder.Finish(result); err != nil {
			monitoring.RecordError("storage")
			keep(err)
		}
	}

	if s.console != nil {
		s.log.Section("Results")
		s.console.Summary(summary)
		if n := *flags.HistoryRows; n > 0 {
			reporting.HistoryTable(stdout, result.History, n)
		}
	}

	if s.excel != nil {
		path := common.ResolvePath(s.cfg.Output.ExcelPath, s.outputDir(), ".xlsx")
		if err := s.excel.Write(summary, path); err != nil {
			reportFailed("excel", path, err)
		} else {
			s.log.Success("History saved to %s", path)
		}
	}

	if path := *flags.CSVPath; path != "" {
		path = common.ResolvePath(path, s.outputDir(), ".csv")
		if err := reporting.WriteHistoryCSV(result.History, path); err != nil {
			reportFailed("csv", path, err)
		} else {
			s.log.Success("History saved to %s", path)
		}
	}

	if path := *flags.JSONPath; path != "" {
		path = common.ResolvePath(path, s.outputDir(), ".json")
		if err := reporting.WriteRunJSON(summary, path); err != nil {
			reportFailed("json", path, err)
		} else {
			s.log.Success("Run saved to %s", path)
		}
	}

	if s.fileLog != nil {
		s.fileLog.LogResult(result)
	}

	return firstErr
}

// close releases the log file, the metrics server and the store
func (s *session) close() {
	if s.fileLog != nil {
		_ = s.fileLog.Close()
	}

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.log.Warn("Metrics server shutdown: %v", err)
		}
	}

	if s.store != nil {
		if err := storage.CloseIfSupported(s.store); err != nil {
			s.log.Warn("Closing store: %v", err)
		}
	}
}

func runEvolution(ctx context.Context, cfg *config.RunConfig, flags *EvolveFlags, log *common.Logger, stdout io.Writer) error {
	fitnessFn, err := cfg.FitnessFunction()
	if err != nil {
		return err
	}

	engineCfg := cfg.EngineConfig()

	log.Header(fmt.Sprintf("%s %s", common.ProjectName, cfg.Name))
	log.Info("Fitness: %s | length %d | population %d | generations %d",
		cfg.Fitness.Name, engineCfg.GenomeLength, engineCfg.PopulationSize, engineCfg.MaxGenerations)
	log.Info("Selection: %s | crossover: %s (%.3f) | mutation: %.4f | elitism: %t | seed: %d",
		engineCfg.Selection, engineCfg.Crossover, engineCfg.CrossoverRate, engineCfg.MutationRate, engineCfg.Elitism, engineCfg.Seed)
	if engineCfg.TargetScore != nil {
		log.Info("Target score: %.4f", *engineCfg.TargetScore)
	}

	s, err := openSession(ctx, cfg, flags, log, stdout)
	defer s.close()
	if err != nil {
		return err
	}
	if s.fileLog != nil {
		s.fileLog.Info("fitness=%s length=%d population=%d generations=%d seed=%d",
			cfg.Fitness.Name, engineCfg.GenomeLength, engineCfg.PopulationSize, engineCfg.MaxGenerations, engineCfg.Seed)
	}

	evolver, err := optimization.NewEvolver(engineCfg, fitnessFn, s.reporter())
	if err != nil {
		return err
	}

	result, runErr := evolver.Run(ctx)
	if runErr != nil {
		monitoring.RecordError("run")
		if s.health != nil {
			s.health.RecordError(runErr)
		}
		if s.fileLog != nil {
			s.fileLog.LogError("run", runErr)
		}
	}

	summary := reporting.RunSummary{
		Name:    cfg.Name,
		Fitness: cfg.Fitness.Name,
		RunID:   s.runID(),
		Config:  engineCfg,
		Result:  result,
	}
	finishErr := s.finish(summary, runErr, flags, stdout)
	if runErr != nil {
		if finishErr != nil {
			log.Error("%v", finishErr)
		}
		return fmt.Errorf("run stopped after %d generations: %w", result.Generations, runErr)
	}
	if finishErr != nil {
		return finishErr
	}

	switch result.State {
	case optimization.StateConverged:
		log.Success("Converged at generation %d with score %.4f", result.Generations-1, result.Best.Score)
	default:
		log.Warn("Stopped after %d generations without reaching the target; best score %.4f", result.Generations, result.Best.Score)
	}
	return nil
}
