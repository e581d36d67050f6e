package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/exprcalc/exprcalc/internal/expression"
	"github.com/exprcalc/exprcalc/internal/types"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
)

type Config struct {
	MaxDepth int
	Division expression.DivisionPolicy
}

func Default() *Config {
	return &Config{
		MaxDepth: expression.DefaultMaxDepth,
		Division: expression.DivisionError,
	}
}

type configDef struct {
	MaxDepth any `json:"max_depth"`
	Division any `json:"division"`
}

// divisionPolicyDef is the long form of the division section:
//
//	division:
//	  policy: ieee
type divisionPolicyDef struct {
	Policy string `json:"policy" mapstructure:"policy"`
}

func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func Load(r io.Reader) (*Config, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(jsonBytes))
	decoder.UseNumber()

	var def configDef
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	return def.compile()
}

func (d *configDef) compile() (*Config, error) {
	cfg := Default()

	if d.MaxDepth != nil {
		v, err := types.ToInt(d.MaxDepth)
		if err != nil {
			return nil, fmt.Errorf("max_depth: %w", err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("max_depth must be positive: %d", v)
		}
		cfg.MaxDepth = v
	}

	switch v := d.Division.(type) {
	case nil:
		// keep default
	case string:
		policy, err := parseDivisionPolicy(v)
		if err != nil {
			return nil, err
		}
		cfg.Division = policy
	case map[string]any:
		var policyDef divisionPolicyDef
		if err := mapstructure.Decode(v, &policyDef); err != nil {
			return nil, fmt.Errorf("division: %w", err)
		}
		policy, err := parseDivisionPolicy(policyDef.Policy)
		if err != nil {
			return nil, err
		}
		cfg.Division = policy
	default:
		return nil, fmt.Errorf("division: unknown type: %T", v)
	}

	return cfg, nil
}

func parseDivisionPolicy(s string) (expression.DivisionPolicy, error) {
	switch policy := expression.DivisionPolicy(s); policy {
	case expression.DivisionError, expression.DivisionIEEE:
		return policy, nil
	default:
		return "", fmt.Errorf("unknown division policy: %q", s)
	}
}
