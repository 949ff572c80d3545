package domain_test

import (
	"testing"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseAccountPath(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    string
		wantErr bool
	}{
		{
			name:  "single segment",
			input: []string{"Assets"},
			want:  "Assets",
		},
		{
			name:  "colon-delimited string",
			input: []string{"Assets:Bank:Checking"},
			want:  "Assets:Bank:Checking",
		},
		{
			name:  "pre-split segments",
			input: []string{"Assets", "Bank"},
			want:  "Assets:Bank",
		},
		{
			name:    "empty path",
			input:   []string{""},
			wantErr: true,
		},
		{
			name:    "too deep",
			input:   []string{"A:B:C:D"},
			wantErr: true,
		},
		{
			name:    "too many segments",
			input:   []string{"A", "B", "C", "D"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseAccountPath(tt.input...)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, apperrors.ValidationError, apperrors.CodeOf(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAncestorClosure(t *testing.T) {
	assert.Equal(t, []string{"A"}, domain.AncestorClosure("A"))
	assert.Equal(t, []string{"A", "A:B", "A:B:C"}, domain.AncestorClosure("A:B:C"))
}

func TestExpandAccountPaths(t *testing.T) {
	paths := []string{"Assets:Bank", "Assets:Receivable", "Income"}
	expanded := domain.ExpandAccountPaths(paths)
	assert.Equal(t, []string{"Assets", "Assets:Bank", "Assets:Receivable", "Income"}, expanded)
}

func TestExpandAccountPaths_Empty(t *testing.T) {
	assert.Empty(t, domain.ExpandAccountPaths(nil))
}
