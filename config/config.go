package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bcnbhd/counts"
)

// Output file suffixes appended to Config.Output.
const (
	SuffixMemberMap     = "-barcode-to-nbhd.txt"
	SuffixTotals        = "-nbhd-count.txt"
	SuffixNeighborhoods = "-nbhds.txt"
	SuffixUMI           = "-umi.txt"
	SuffixGrouped       = "-grouped.fq"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New()

// Config holds the settings shared by all subcommands.
type Config struct {
	// Output is the base path of output files.
	Output string `yaml:"output"`
	// Traversal is "dfs" or "bfs".
	Traversal string `yaml:"traversal" validate:"oneof=dfs bfs depth-first breadth-first"`
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	Quiet     bool   `yaml:"quiet"`
	// Header writes column headers on report tables.
	Header bool `yaml:"header"`
	// Metrics, when set, receives a Prometheus text dump at exit.
	Metrics string `yaml:"metrics"`
	// ProgressEvery logs a line every N clustered sequences; 0 disables it.
	ProgressEvery int `yaml:"progress_every" validate:"gte=0"`

	UMI      UMI           `yaml:"umi"`
	Tabulate counts.Filter `yaml:"tabulate"`
}

// UMI configures the umi subcommand.
type UMI struct {
	// CollapseBarcodes merges barcodes one edit apart.
	CollapseBarcodes bool `yaml:"collapse_barcodes"`
	// Dedup merges UMIs one edit apart within a barcode.
	Dedup bool `yaml:"dedup"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Traversal:     "dfs",
		LogLevel:      "info",
		ProgressEvery: 100000,
	}
}

// Load reads path over Default and validates the result. Unknown keys are
// an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML from r over Default and validates the result. Empty
// input yields Default.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s (got %v)", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// OutputPath returns Output with suffix appended.
func (c Config) OutputPath(suffix string) string {
	return c.Output + suffix
}
