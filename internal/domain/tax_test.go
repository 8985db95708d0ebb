package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func singleTable(year int) TaxTable {
	return TaxTable{
		Year:         year,
		FilingStatus: FilingSingle,
		Jurisdiction: JurisdictionFederal,
		Brackets: []TaxBracket{
			{Threshold: decimal.Zero, Rate: decimal.NewFromFloat(0.10)},
			{Threshold: decimal.NewFromInt(40000), Rate: decimal.NewFromFloat(0.20)},
		},
	}
}

func TestTaxTableValidate(t *testing.T) {
	assert.NoError(t, singleTable(2026).Validate())

	t.Run("no brackets", func(t *testing.T) {
		table := singleTable(2026)
		table.Brackets = nil
		assert.ErrorContains(t, table.Validate(), "no brackets")
	})

	t.Run("first threshold not zero", func(t *testing.T) {
		table := singleTable(2026)
		table.Brackets[0].Threshold = decimal.NewFromInt(100)
		assert.ErrorContains(t, table.Validate(), "must be 0")
	})

	t.Run("thresholds not increasing", func(t *testing.T) {
		table := singleTable(2026)
		table.Brackets[1].Threshold = decimal.Zero
		assert.ErrorContains(t, table.Validate(), "strictly increasing")
	})

	t.Run("negative rate", func(t *testing.T) {
		table := singleTable(2026)
		table.Brackets[1].Rate = decimal.NewFromFloat(-0.1)
		assert.ErrorContains(t, table.Validate(), "negative")
	})

	t.Run("negative FICA parameter", func(t *testing.T) {
		table := singleTable(2026)
		table.SSRate = decimal.NewFromFloat(-0.01)
		assert.ErrorContains(t, table.Validate(), "FICA")
	})
}

func TestFindLatest(t *testing.T) {
	params := TaxParameters{Tables: []TaxTable{
		singleTable(2024),
		singleTable(2026),
		singleTable(2022),
	}}

	t.Run("exact year", func(t *testing.T) {
		table := params.FindLatest(2026, FilingSingle, JurisdictionFederal)
		require.NotNil(t, table)
		assert.Equal(t, 2026, table.Year)
	})

	t.Run("future year uses last published", func(t *testing.T) {
		table := params.FindLatest(2040, FilingSingle, JurisdictionFederal)
		require.NotNil(t, table)
		assert.Equal(t, 2026, table.Year)
	})

	t.Run("between published years", func(t *testing.T) {
		table := params.FindLatest(2025, FilingSingle, JurisdictionFederal)
		require.NotNil(t, table)
		assert.Equal(t, 2024, table.Year)
	})

	t.Run("before all tables", func(t *testing.T) {
		assert.Nil(t, params.FindLatest(2020, FilingSingle, JurisdictionFederal))
	})

	t.Run("wrong jurisdiction", func(t *testing.T) {
		assert.Nil(t, params.FindLatest(2026, FilingSingle, "CO"))
	})
}

func TestTaxOverridesUnmarshalYAML(t *testing.T) {
	t.Run("partial overrides", func(t *testing.T) {
		var got TaxOverrides
		require.NoError(t, yaml.Unmarshal([]byte("federal: \"12345.67\"\nfica: \"0\"\n"), &got))

		require.NotNil(t, got.Federal)
		assert.True(t, got.Federal.Equal(decimal.NewFromFloat(12345.67)))
		require.NotNil(t, got.FICA)
		assert.True(t, got.FICA.IsZero())
		assert.Nil(t, got.State)
	})

	t.Run("bad number", func(t *testing.T) {
		var got TaxOverrides
		err := yaml.Unmarshal([]byte("state: \"lots\"\n"), &got)
		assert.ErrorContains(t, err, "tax override state")
	})
}
