package domain_test

import (
	"testing"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRates(t *testing.T) {
	rates := map[string]float64{
		"ZAR": 0.1,
		"USD": 0.01,
		"EUR": 0.008,
	}

	normalized, err := domain.NormalizeRates("ZAR", rates)
	require.NoError(t, err)

	assert.True(t, normalized["ZAR"].Equal(decimal.NewFromInt(1)), "base currency must normalize to 1, got %s", normalized["ZAR"])
	assert.True(t, normalized["USD"].Equal(decimal.RequireFromString("0.1")), "got %s", normalized["USD"])
	assert.True(t, normalized["EUR"].Equal(decimal.RequireFromString("0.08")), "got %s", normalized["EUR"])
}

func TestNormalizeRates_MissingBase(t *testing.T) {
	_, err := domain.NormalizeRates("ZAR", map[string]float64{"USD": 1})
	require.Error(t, err)
	assert.Equal(t, apperrors.MissingInput, apperrors.CodeOf(err))
}

func TestNormalizeRates_ZeroBase(t *testing.T) {
	_, err := domain.NormalizeRates("ZAR", map[string]float64{"ZAR": 0, "USD": 1})
	require.Error(t, err)
	assert.Equal(t, apperrors.MissingInput, apperrors.CodeOf(err))
}
