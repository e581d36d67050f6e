package types_test

import (
	"testing"

	"github.com/exprcalc/exprcalc/internal/types"
	"github.com/goccy/go-json"
)

func TestToInt(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name        string
		value       any
		expected    int
		expectToErr bool
	}{
		{name: "int", value: 42, expected: 42},
		{name: "uint8", value: uint8(3), expected: 3},
		{name: "whole float", value: 16.0, expected: 16},
		{name: "json.Number", value: json.Number("128"), expected: 128},
		{name: "fractional float", value: 1.5, expectToErr: true},
		{name: "fractional json.Number", value: json.Number("1.5"), expectToErr: true},
		{name: "bool", value: true, expectToErr: true},
		{name: "string", value: "1", expectToErr: true},
		{name: "nil", value: nil, expectToErr: true},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := types.ToInt(tt.value)
			if err != nil {
				if tt.expectToErr {
					return
				}
				t.Fatal(err)
			}
			if tt.expectToErr {
				t.Fatal("should be error")
			}
			if got != tt.expected {
				t.Errorf("expect to %v but got %v", tt.expected, got)
			}
		})
	}
}
