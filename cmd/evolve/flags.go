package main

import (
	"flag"
	"strings"

	"github.com/ducminhle1904/bitstring-ga/cmd/common"
	"github.com/ducminhle1904/bitstring-ga/pkg/config"
	"github.com/ducminhle1904/bitstring-ga/pkg/fitness"
	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// EvolveFlags holds all command line flags for the evolve command
type EvolveFlags struct {
	// Configuration
	ConfigFile  *string
	Name        *string
	Fitness     *string
	KickerBonus *float64
	TrapSize    *int

	// Engine parameters
	Length           *int
	Population       *int
	Generations      *int
	CrossoverRate    *float64
	MutationRate     *float64
	AutoMutationRate *bool
	Elitism          *bool
	Target           *float64
	Seed             *int64
	Selection        *string
	TournamentSize   *int
	Crossover        *string

	// Output options
	XLSXPath    *string
	CSVPath     *string
	JSONPath    *string
	LogDir      *string
	HistoryRows *int

	// Storage and monitoring
	Store       *string
	DBPath      *string
	MetricsAddr *string

	Common *common.CommonFlags
}

// NewEvolveFlags registers all evolve flags on fs
func NewEvolveFlags(fs *flag.FlagSet) *EvolveFlags {
	defaults := config.NewDefaultRunConfig()

	return &EvolveFlags{
		// Configuration
		ConfigFile:  fs.String("config", "", "Path to JSON run configuration"),
		Name:        fs.String("name", defaults.Name, "Run name used for logs, metrics and stored history"),
		Fitness:     fs.String("fitness", defaults.Fitness.Name, "Fitness function ("+strings.Join(fitness.Names(), ", ")+")"),
		KickerBonus: fs.Float64("kicker-bonus", fitness.DefaultKickerBonus, "Score of the all-zero genome for the kicker fitness"),
		TrapSize:    fs.Int("trap-size", 4, "Block size for the trap fitness"),

		// Engine parameters
		Length:           fs.Int("length", defaults.GA.GenomeLength, "Genome length in bits"),
		Population:       fs.Int("population", defaults.GA.PopulationSize, "Population size"),
		Generations:      fs.Int("generations", defaults.GA.MaxGenerations, "Maximum number of generations"),
		CrossoverRate:    fs.Float64("crossover-rate", defaults.GA.CrossoverRate, "Probability that a parent pair is recombined"),
		MutationRate:     fs.Float64("mutation-rate", defaults.GA.MutationRate, "Per-bit flip probability"),
		AutoMutationRate: fs.Bool("auto-mutation", false, "Use 1/length as the mutation rate"),
		Elitism:          fs.Bool("elitism", defaults.GA.Elitism, "Carry the best genome into the next generation"),
		Target:           fs.Float64("target", 0, "Stop once the best score reaches this value (unset: run all generations)"),
		Seed:             fs.Int64("seed", 0, "Random seed"),
		Selection:        fs.String("selection", optimization.SelectionRoulette, "Parent selection (roulette, tournament, rank)"),
		TournamentSize:   fs.Int("tournament-size", optimization.DefaultTournamentSize, "Contestants per tournament"),
		Crossover:        fs.String("crossover", optimization.CrossoverSinglePoint, "Crossover operator (single_point, uniform)"),

		// Output options
		XLSXPath:    fs.String("xlsx", "", "Write generation history to this XLSX file"),
		CSVPath:     fs.String("csv", "", "Write generation history to this CSV file"),
		JSONPath:    fs.String("json", "", "Write the run summary and history to this JSON file"),
		LogDir:      fs.String("log-dir", "", "Directory for the run log file (disabled when empty)"),
		HistoryRows: fs.Int("history", 0, "Print a history table with up to this many rows"),

		// Storage and monitoring
		Store:       fs.String("store", defaults.Storage.Backend, "Run history backend (none, memory, sqlite)"),
		DBPath:      fs.String("db", defaults.Storage.SQLitePath, "SQLite database path"),
		MetricsAddr: fs.String("metrics-addr", "", "Serve /metrics and /health on this address"),

		Common: common.RegisterCommonFlags(fs),
	}
}

// Apply copies every flag set on the command line onto cfg
func (f *EvolveFlags) Apply(fs *flag.FlagSet, cfg *config.RunConfig) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			cfg.Name = *f.Name
		case "fitness":
			cfg.Fitness.Name = *f.Fitness
		case "kicker-bonus":
			cfg.Fitness.KickerBonus = *f.KickerBonus
		case "trap-size":
			cfg.Fitness.TrapSize = *f.TrapSize
		case "length":
			cfg.GA.GenomeLength = *f.Length
		case "population":
			cfg.GA.PopulationSize = *f.Population
		case "generations":
			cfg.GA.MaxGenerations = *f.Generations
		case "crossover-rate":
			cfg.GA.CrossoverRate = *f.CrossoverRate
		case "mutation-rate":
			cfg.GA.MutationRate = *f.MutationRate
		case "auto-mutation":
			cfg.AutoMutationRate = *f.AutoMutationRate
		case "elitism":
			cfg.GA.Elitism = *f.Elitism
		case "target":
			cfg.GA = cfg.GA.WithTarget(*f.Target)
		case "seed":
			cfg.GA.Seed = *f.Seed
		case "selection":
			cfg.GA.Selection = *f.Selection
		case "tournament-size":
			cfg.GA.TournamentSize = *f.TournamentSize
		case "crossover":
			cfg.GA.Crossover = *f.Crossover
		case "xlsx":
			cfg.Output.ExcelPath = *f.XLSXPath
		case "log-dir":
			cfg.Output.LogDir = *f.LogDir
		case "store":
			cfg.Storage.Backend = *f.Store
		case "db":
			cfg.Storage.SQLitePath = *f.DBPath
		case "metrics-addr":
			cfg.Metrics.Address = *f.MetricsAddr
		}
	})
}

// Validate checks flag values that must hold before any configuration is loaded
func (f *EvolveFlags) Validate() error {
	v := common.NewFlagValidator().
		ValidateFile("config", *f.ConfigFile, false).
		ValidatePositive("length", *f.Length).
		ValidatePositive("population", *f.Population).
		ValidatePositive("generations", *f.Generations).
		ValidateRate("crossover-rate", *f.CrossoverRate).
		ValidateRate("mutation-rate", *f.MutationRate).
		ValidateChoice("store", strings.ToLower(*f.Store), []string{"none", "memory", "sqlite"}).
		ValidateInt("history", *f.HistoryRows, 0, 1<<20)
	return v.GetError()
}
