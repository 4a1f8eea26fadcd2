// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/katalvlaran/esh/manifold"
	"github.com/katalvlaran/esh/model"
	"github.com/katalvlaran/esh/spectral"
)

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Store kinds.
const (
	StoreLocal  = "local"
	StoreS3     = "s3"
	StoreMinio  = "minio"
	StoreBadger = "badger"
)

// Eigen backends.
const (
	EigenGonum  = "gonum"
	EigenJacobi = "jacobi"
)

// Config is the full tool configuration.
type Config struct {
	Solver      Solver  `yaml:"solver"`
	Anchors     Anchors `yaml:"anchors"`
	Data        Data    `yaml:"data"`
	Store       Store   `yaml:"store"`
	Compression string  `yaml:"compression,omitempty"`
}

// Solver configures the hash learner.
type Solver struct {
	// Variant is "plain" or "generalized".
	Variant string `yaml:"variant"`

	// Bits lists the code widths K; train uses the first, sweep uses all.
	Bits []int `yaml:"bits"`

	// Alpha fixes the regularization weight; 0 selects it automatically.
	Alpha float64 `yaml:"alpha,omitempty"`

	StepSize    float64 `yaml:"step_size"`
	MaxIter     int     `yaml:"max_iter"`
	Tolerance   float64 `yaml:"tolerance"`
	CheckEvery  int     `yaml:"check_every"`
	LogEvery    int     `yaml:"log_every"`
	Eigen       string  `yaml:"eigen"`
	Parallelism int     `yaml:"parallelism,omitempty"`
}

// Anchors configures the anchor graph built when no anchor mapping is given.
type Anchors struct {
	Count   int     `yaml:"count"`
	Nearest int     `yaml:"nearest"`
	Sigma   float64 `yaml:"sigma,omitempty"`
	MaxIter int     `yaml:"max_iter"`
	Seed    int64   `yaml:"seed"`
}

// Data names the input files.
type Data struct {
	// Features is the n×d feature CSV.
	Features string `yaml:"features,omitempty"`

	// Anchors is an optional n×m anchor mapping CSV (Z).
	Anchors string `yaml:"anchors,omitempty"`
}

// Store selects where models are written.
type Store struct {
	Kind      string `yaml:"kind"`
	Dir       string `yaml:"dir,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	Region    string `yaml:"region,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Secure    bool   `yaml:"secure,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: Solver{
			Variant:    manifold.VariantPlain.String(),
			Bits:       []int{32},
			StepSize:   manifold.DefaultStepSize,
			MaxIter:    manifold.DefaultMaxIter,
			Tolerance:  manifold.DefaultTolerance,
			CheckEvery: manifold.DefaultCheckEvery,
			LogEvery:   manifold.DefaultLogEvery,
			Eigen:      EigenGonum,
		},
		Anchors: Anchors{
			Count:   300,
			Nearest: 5,
			MaxIter: 50,
			Seed:    1,
		},
		Store: Store{
			Kind: StoreLocal,
			Dir:  "models",
		},
		Compression: model.Zstd.String(),
	}
}

// Load reads a YAML file over Default(). An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}

	return nil
}

// ModelCompression returns the configured model codec.
func (c *Config) ModelCompression() (model.Compression, error) {
	return model.ParseCompression(c.Compression)
}

// Validate checks every section and joins all problems into one error.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	s := c.Solver
	if _, ok := manifold.ParseVariant(s.Variant); !ok {
		bad("solver.variant %q", s.Variant)
	}
	if len(s.Bits) == 0 {
		bad("solver.bits is empty")
	}
	for _, k := range s.Bits {
		if k < 1 {
			bad("solver.bits entry %d", k)
		}
	}
	if s.Alpha < 0 {
		bad("solver.alpha %g", s.Alpha)
	}
	if !(s.StepSize > 0) {
		bad("solver.step_size %g", s.StepSize)
	}
	if s.MaxIter < 1 {
		bad("solver.max_iter %d", s.MaxIter)
	}
	if !(s.Tolerance > 0) {
		bad("solver.tolerance %g", s.Tolerance)
	}
	if s.CheckEvery < 1 {
		bad("solver.check_every %d", s.CheckEvery)
	}
	if s.LogEvery < 0 {
		bad("solver.log_every %d", s.LogEvery)
	}
	if s.Eigen != EigenGonum && s.Eigen != EigenJacobi {
		bad("solver.eigen %q", s.Eigen)
	}
	if s.Parallelism < 0 {
		bad("solver.parallelism %d", s.Parallelism)
	}

	a := c.Anchors
	if a.Count < 1 {
		bad("anchors.count %d", a.Count)
	}
	if a.Nearest < 1 || a.Nearest > a.Count {
		bad("anchors.nearest %d", a.Nearest)
	}
	if a.Sigma < 0 {
		bad("anchors.sigma %g", a.Sigma)
	}
	if a.MaxIter < 1 {
		bad("anchors.max_iter %d", a.MaxIter)
	}

	switch st := c.Store; st.Kind {
	case StoreLocal, StoreBadger:
		if st.Dir == "" {
			bad("store.dir is required for %s", st.Kind)
		}
	case StoreS3:
		if st.Bucket == "" {
			bad("store.bucket is required for s3")
		}
	case StoreMinio:
		if st.Bucket == "" || st.Endpoint == "" {
			bad("store.bucket and store.endpoint are required for minio")
		}
	default:
		bad("store.kind %q", st.Kind)
	}

	if _, err := c.ModelCompression(); err != nil {
		bad("compression %q", c.Compression)
	}

	return errors.Join(errs...)
}

// SolverOptions maps the solver section to manifold options.
// Call Validate first; invalid values make the option constructors panic.
func (c *Config) SolverOptions() []manifold.Option {
	s := c.Solver
	opts := []manifold.Option{
		manifold.WithStepSize(s.StepSize),
		manifold.WithMaxIter(s.MaxIter),
		manifold.WithTolerance(s.Tolerance),
		manifold.WithCheckEvery(s.CheckEvery),
		manifold.WithLogEvery(s.LogEvery),
	}
	if s.Alpha > 0 {
		opts = append(opts, manifold.WithAlpha(s.Alpha))
	}
	if strings.EqualFold(s.Eigen, EigenJacobi) {
		opts = append(opts, manifold.WithEigenSolver(spectral.Jacobi{}))
	}

	return opts
}

// Variant returns the parsed solver variant.
func (c *Config) Variant() manifold.Variant {
	v, _ := manifold.ParseVariant(c.Solver.Variant)

	return v
}
