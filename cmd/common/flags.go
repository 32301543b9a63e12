package common

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// CommonFlags contains flags that are shared across commands
type CommonFlags struct {
	// Environment and configuration
	EnvFile *string

	// Logging and output
	Verbose  *bool
	Silent   *bool
	NoEmojis *bool
	NoColors *bool

	// Help and version
	Version *bool
	Help    *bool
}

// RegisterCommonFlags registers common flags on fs
func RegisterCommonFlags(fs *flag.FlagSet) *CommonFlags {
	return &CommonFlags{
		EnvFile: fs.String("env", ".env", "Environment file with GA_* overrides"),

		Verbose:  fs.Bool("verbose", false, "Print debug messages"),
		Silent:   fs.Bool("silent", false, "Only print errors"),
		NoEmojis: fs.Bool("no-emojis", false, "Plain text prefixes instead of emojis"),
		NoColors: fs.Bool("no-colors", false, "Disable colored output"),

		Version: fs.Bool("version", false, "Show version information"),
		Help:    fs.Bool("help", false, "Show help information"),
	}
}

// FlagValidator collects flag problems so they can be reported together
type FlagValidator struct {
	errors []string
}

// NewFlagValidator creates an empty validator
func NewFlagValidator() *FlagValidator {
	return &FlagValidator{errors: make([]string, 0)}
}

func (v *FlagValidator) addf(format string, args ...interface{}) *FlagValidator {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// ValidateFloat rejects NaN and values outside [min, max]
func (v *FlagValidator) ValidateFloat(name string, value float64, min, max float64) *FlagValidator {
	if math.IsNaN(value) || value < min || value > max {
		return v.addf("%s must be between %.4f and %.4f, got: %.4f", name, min, max, value)
	}
	return v
}

// ValidateRate checks a probability flag
func (v *FlagValidator) ValidateRate(name string, value float64) *FlagValidator {
	return v.ValidateFloat(name, value, 0, 1)
}

// ValidateInt rejects values outside [min, max]
func (v *FlagValidator) ValidateInt(name string, value int, min, max int) *FlagValidator {
	if value < min || value > max {
		return v.addf("%s must be between %d and %d, got: %d", name, min, max, value)
	}
	return v
}

// ValidatePositive checks a size or count flag
func (v *FlagValidator) ValidatePositive(name string, value int) *FlagValidator {
	if value < 1 {
		return v.addf("%s must be positive, got: %d", name, value)
	}
	return v
}

// ValidateChoice requires value to be one of choices
func (v *FlagValidator) ValidateChoice(name, value string, choices []string) *FlagValidator {
	for _, choice := range choices {
		if value == choice {
			return v
		}
	}
	return v.addf("%s must be one of [%s], got: %s", name, strings.Join(choices, ", "), value)
}

// ValidateFile requires path to exist when set; an empty path fails only when required
func (v *FlagValidator) ValidateFile(name, path string, required bool) *FlagValidator {
	switch {
	case path == "" && required:
		return v.addf("%s is required", name)
	case path == "":
		return v
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return v.addf("%s file does not exist: %s", name, path)
	}
	return v
}

// AddError records a custom message
func (v *FlagValidator) AddError(message string) *FlagValidator {
	return v.addf("%s", message)
}

func (v *FlagValidator) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *FlagValidator) GetErrors() []string {
	return v.errors
}

// GetError joins every collected problem into one error, nil when there are none
func (v *FlagValidator) GetError() error {
	switch len(v.errors) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("validation error: %s", v.errors[0])
	default:
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(v.errors, "\n  - "))
	}
}

// PrintErrors writes one bullet per problem
func (v *FlagValidator) PrintErrors(out io.Writer) {
	if !v.HasErrors() {
		return
	}

	fmt.Fprintln(out, "❌ Flag validation errors:")
	for _, msg := range v.errors {
		fmt.Fprintf(out, "   • %s\n", msg)
	}
}

// UsageExample is one command line shown under EXAMPLES
type UsageExample struct {
	Command     string
	Description string
}

// UsageFormatter prints the help screen of a command
type UsageFormatter struct {
	AppName        string
	AppDescription string
	Examples       []UsageExample
}

func NewUsageFormatter(appName, description string) *UsageFormatter {
	return &UsageFormatter{AppName: appName, AppDescription: description}
}

// AddExample appends an example; calls can be chained
func (u *UsageFormatter) AddExample(command, description string) *UsageFormatter {
	u.Examples = append(u.Examples, UsageExample{Command: command, Description: description})
	return u
}

// PrintUsage prints the description, examples and the defaults of fs
func (u *UsageFormatter) PrintUsage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(out, "%s - %s\n\n", u.AppName, u.AppDescription)
	fmt.Fprintf(out, "USAGE:\n  %s [OPTIONS]\n\n", u.AppName)

	if len(u.Examples) > 0 {
		fmt.Fprintln(out, "EXAMPLES:")
		for _, ex := range u.Examples {
			fmt.Fprintf(out, "  # %s\n  %s\n\n", ex.Description, ex.Command)
		}
	}

	fmt.Fprintln(out, "OPTIONS:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// CheckHelpAndVersion handles -version and -help, returning true when the command should exit
func CheckHelpAndVersion(out io.Writer, commonFlags *CommonFlags, formatter *UsageFormatter, fs *flag.FlagSet) bool {
	switch {
	case *commonFlags.Version:
		PrintVersion(out, formatter.AppName)
	case *commonFlags.Help:
		formatter.PrintUsage(out, fs)
	default:
		return false
	}
	return true
}

// SetupLogger applies the output flags to logger
func SetupLogger(logger *Logger, commonFlags *CommonFlags) {
	logger.SetSilentMode(*commonFlags.Silent)
	if *commonFlags.Verbose {
		logger.Level = LogLevelDebug
	}
	logger.ShowEmojis = !*commonFlags.NoEmojis
	logger.ShowColors = !*commonFlags.NoColors
}
