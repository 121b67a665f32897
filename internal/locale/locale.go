package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type CliFlags struct {
	Config      string `toml:"config"`
	Environment string `toml:"environment"`
	Connection  string `toml:"connection"`
	Format      string `toml:"format"`
	NoNewlines  string `toml:"no_newlines"`
}

type CliCommands struct {
	Run    string `toml:"run"`
	Export string `toml:"export"`
	Check  string `toml:"check"`
}

type CliArgs struct {
	Run    string `toml:"run"`
	Export string `toml:"export"`
}

type CliSection struct {
	Description string      `toml:"description"`
	Flags       CliFlags    `toml:"flags"`
	Commands    CliCommands `toml:"commands"`
	Args        CliArgs     `toml:"args"`
}

type ErrorsSection struct {
	InvalidEnvironment string `toml:"invalid_environment"`
	UnknownFormat      string `toml:"unknown_format"`
	UnknownConnection  string `toml:"unknown_connection"`
	NoConnection       string `toml:"no_connection"`
	MissingScript      string `toml:"missing_script"`
	MissingOutput      string `toml:"missing_output"`
}

type LogsSection struct {
	ExecutingBatch   string `toml:"executing_batch"`
	BatchFailed      string `toml:"batch_failed"`
	NoBatches        string `toml:"no_batches"`
	ConnectionOK     string `toml:"connection_ok"`
	ConnectionFailed string `toml:"connection_failed"`
	RenderingResult  string `toml:"rendering_result"`
	EnvironmentOff   string `toml:"environment_off"`
	NoHostSpecified  string `toml:"no_host_specified"`
	SavedWorkbook    string `toml:"saved_workbook"`
	ScriptFromFile   string `toml:"script_from_file"`
	ScriptInline     string `toml:"script_inline"`
}

type Locale struct {
	CLI    CliSection    `toml:"cli"`
	Errors ErrorsSection `toml:"errors"`
	Logs   LogsSection   `toml:"logs"`
}

// L is the active message catalog. It starts as the built-in en_US set and
// is replaced by Load when a locale file overrides it.
var L = Default()

func Default() *Locale {
	return &Locale{
		CLI: CliSection{
			Description: "Executes a SQL script and renders each result set as tabular text or replayable INSERT statements",
			Flags: CliFlags{
				Config:      "path to the configuration file",
				Environment: "environment to resolve connections against",
				Connection:  "name of the connection to run the script on",
				Format:      "output format: text or insert",
				NoNewlines:  "truncate values at the first CR-LF pair",
			},
			Commands: CliCommands{
				Run:    "execute a script and print each result set to stdout",
				Export: "execute a script and write each result set to an xlsx workbook",
				Check:  "ping every enabled connection and report its status",
			},
			Args: CliArgs{
				Run:    "<script file or inline SQL>",
				Export: "<script file or inline SQL> <output.xlsx>",
			},
		},
		Errors: ErrorsSection{
			InvalidEnvironment: "invalid environment",
			UnknownFormat:      "unknown output format: %s",
			UnknownConnection:  "unknown connection: %s",
			NoConnection:       "no connection selected and more than one is configured",
			MissingScript:      "no script given",
			MissingOutput:      "no output file given",
		},
		Logs: LogsSection{
			ExecutingBatch:   "Executing batch",
			BatchFailed:      "Batch execution failed",
			NoBatches:        "Script contains no executable batches",
			ConnectionOK:     "Connection is healthy",
			ConnectionFailed: "Connection failed",
			RenderingResult:  "Rendering result set",
			EnvironmentOff:   "Environment is disabled",
			NoHostSpecified:  "No host specified for connection",
			SavedWorkbook:    "Saved workbook",
			ScriptFromFile:   "Loaded script from file",
			ScriptInline:     "Treating argument as inline SQL",
		},
	}
}

func DetectSystemLocale() string {
	lang := os.Getenv("LANG")
	if lang == "" {
		return "en_US"
	}

	cleanLang := strings.Split(lang, ".")[0]

	return strings.ReplaceAll(cleanLang, "-", "_")
}

// Load replaces the built-in catalog with a TOML locale file when one
// exists for the requested locale. A missing file is not an error; the
// defaults stay in place.
func Load(localeName string) (*Locale, error) {
	if localeName == "" || strings.ToLower(localeName) == "auto" {
		localeName = DetectSystemLocale()
	}

	localePath := filepath.Join("config", "locales", fmt.Sprintf("%s.toml", localeName))

	if _, err := os.Stat(localePath); os.IsNotExist(err) {
		return L, nil
	}

	l := Default()
	if _, err := toml.DecodeFile(localePath, l); err != nil {
		return nil, fmt.Errorf("failed to load locale file %s: %w", localePath, err)
	}
	L = l

	return l, nil
}
