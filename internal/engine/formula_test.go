package engine_test

import (
	"testing"

	"github.com/ekowhinson/HRMS-sub004/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEvalFormula(t *testing.T) {
	symbols := map[string]decimal.Decimal{
		"basic":     decimal.NewFromInt(1760),
		"transport": decimal.NewFromInt(200),
	}

	cases := []struct {
		name string
		expr string
		want string
	}{
		{"hourly overtime rate", "basic/176*1.5", "15"},
		{"addition and precedence", "basic + transport * 2", "2160"},
		{"parentheses", "(basic + transport) / 2", "980"},
		{"unary minus", "-transport + 300", "100"},
		{"literal only", "42.50", "42.5"},
		{"case-insensitive symbols", "BASIC / 2", "880"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.EvalFormula(tc.expr, symbols)
			assert.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestEvalFormula_Errors(t *testing.T) {
	symbols := map[string]decimal.Decimal{"basic": decimal.NewFromInt(1000)}

	cases := []struct {
		name string
		expr string
	}{
		{"division by zero", "basic / 0"},
		{"unresolved reference", "basic + housing"},
		{"dangling operator", "basic +"},
		{"missing closing paren", "(basic + 1"},
		{"trailing garbage", "basic 5"},
		{"empty expression", ""},
		{"function calls rejected", "max(basic, 0)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.EvalFormula(tc.expr, symbols)
			assert.Error(t, err)
		})
	}
}
