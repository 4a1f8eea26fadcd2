// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix starts every recognized environment variable.
const EnvPrefix = "ESH_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from ESH_* variables. A nil lookup uses
// os.LookupEnv. Unparsable values are reported together.
//
//	ESH_VARIANT ESH_BITS (comma list) ESH_ALPHA ESH_STEP_SIZE ESH_MAX_ITER
//	ESH_TOLERANCE ESH_LOG_EVERY ESH_EIGEN ESH_PARALLELISM
//	ESH_ANCHORS ESH_NEAREST ESH_SIGMA ESH_SEED
//	ESH_STORE ESH_STORE_DIR ESH_BUCKET ESH_PREFIX ESH_ENDPOINT ESH_REGION
//	ESH_ACCESS_KEY ESH_SECRET_KEY ESH_SECURE ESH_COMPRESSION
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var errs []error
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok
	}
	str := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := get(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = f
		}
	}

	str("VARIANT", &c.Solver.Variant)
	if v, ok := get("BITS"); ok {
		bits, err := ParseBits(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sBITS: %w", EnvPrefix, err))
		} else {
			c.Solver.Bits = bits
		}
	}
	float("ALPHA", &c.Solver.Alpha)
	float("STEP_SIZE", &c.Solver.StepSize)
	integer("MAX_ITER", &c.Solver.MaxIter)
	float("TOLERANCE", &c.Solver.Tolerance)
	integer("LOG_EVERY", &c.Solver.LogEvery)
	str("EIGEN", &c.Solver.Eigen)
	integer("PARALLELISM", &c.Solver.Parallelism)

	integer("ANCHORS", &c.Anchors.Count)
	integer("NEAREST", &c.Anchors.Nearest)
	float("SIGMA", &c.Anchors.Sigma)
	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sSEED: %w", EnvPrefix, err))
		} else {
			c.Anchors.Seed = n
		}
	}

	str("STORE", &c.Store.Kind)
	str("STORE_DIR", &c.Store.Dir)
	str("BUCKET", &c.Store.Bucket)
	str("PREFIX", &c.Store.Prefix)
	str("ENDPOINT", &c.Store.Endpoint)
	str("REGION", &c.Store.Region)
	str("ACCESS_KEY", &c.Store.AccessKey)
	str("SECRET_KEY", &c.Store.SecretKey)
	if v, ok := get("SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sSECURE: %w", EnvPrefix, err))
		} else {
			c.Store.Secure = b
		}
	}
	str("COMPRESSION", &c.Compression)

	return errors.Join(errs...)
}

// ParseBits parses a comma-separated list of positive code widths.
func ParseBits(s string) ([]int, error) {
	var bits []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if k < 1 {
			return nil, fmt.Errorf("bit width %d must be positive", k)
		}
		bits = append(bits, k)
	}
	if len(bits) == 0 {
		return nil, errors.New("no bit widths")
	}

	return bits, nil
}
