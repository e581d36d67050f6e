package config_test

import (
	"strings"
	"testing"

	"github.com/exprcalc/exprcalc/internal/config"
	"github.com/exprcalc/exprcalc/internal/expression"
	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name        string
		yaml        string
		expected    *config.Config
		expectToErr bool
	}{
		{
			name:     "empty",
			yaml:     "",
			expected: config.Default(),
		},
		{
			name: "max depth only",
			yaml: "max_depth: 128\n",
			expected: &config.Config{
				MaxDepth: 128,
				Division: expression.DivisionError,
			},
		},
		{
			name: "division as string",
			yaml: "division: ieee\n",
			expected: &config.Config{
				MaxDepth: expression.DefaultMaxDepth,
				Division: expression.DivisionIEEE,
			},
		},
		{
			name: "division as map",
			yaml: "division:\n  policy: ieee\n",
			expected: &config.Config{
				MaxDepth: expression.DefaultMaxDepth,
				Division: expression.DivisionIEEE,
			},
		},
		{
			name: "everything",
			yaml: "max_depth: 8\ndivision:\n  policy: error\n",
			expected: &config.Config{
				MaxDepth: 8,
				Division: expression.DivisionError,
			},
		},
		{
			name:        "unknown division policy",
			yaml:        "division: truncate\n",
			expectToErr: true,
		},
		{
			name:        "division as list",
			yaml:        "division:\n  - ieee\n",
			expectToErr: true,
		},
		{
			name:        "zero max depth",
			yaml:        "max_depth: 0\n",
			expectToErr: true,
		},
		{
			name:        "negative max depth",
			yaml:        "max_depth: -1\n",
			expectToErr: true,
		},
		{
			name:        "fractional max depth",
			yaml:        "max_depth: 1.5\n",
			expectToErr: true,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.Load(strings.NewReader(tt.yaml))
			if err != nil {
				if tt.expectToErr {
					t.Logf("expected error: %v", err)
					return
				}
				t.Fatal(err)
			}
			if tt.expectToErr {
				t.Fatal("should be error")
			}

			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("unexpected config (-want +got):\n%s", diff)
			}
		})
	}
}
