package taxonomy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
	"Income": {
		"Salary": ["payroll", "direct deposit"]
	},
	"Expense": {
		"Groceries": ["walmart", "kroger"],
		"Rent": ["landlord"],
		"Misc": []
	}
}`

func TestUnmarshalPreservesOrder(t *testing.T) {
	t.Parallel()
	var tax Taxonomy
	require.NoError(t, json.Unmarshal([]byte(sampleJSON), &tax))

	require.Len(t, tax, 2)
	require.Equal(t, "Income", tax[0].Type)
	require.Equal(t, "Expense", tax[1].Type)

	names := make([]string, 0, len(tax[1].Categories))
	for _, c := range tax[1].Categories {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"Groceries", "Rent", "Misc"}, names)
	require.Equal(t, []string{"walmart", "kroger"}, tax[1].Categories[0].Keywords)
	require.Empty(t, tax[1].Categories[2].Keywords)
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()
	var tax Taxonomy
	require.NoError(t, json.Unmarshal([]byte(sampleJSON), &tax))

	out, err := json.Marshal(tax)
	require.NoError(t, err)

	var again Taxonomy
	require.NoError(t, json.Unmarshal(out, &again))
	require.Equal(t, tax, again)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	tax, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tax, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestUnmarshalRejectsWrongShape(t *testing.T) {
	t.Parallel()
	var tax Taxonomy
	require.Error(t, json.Unmarshal([]byte(`["Income"]`), &tax))
	require.Error(t, json.Unmarshal([]byte(`{"Income": ["walmart"]}`), &tax))
}

func TestValidType(t *testing.T) {
	t.Parallel()
	require.True(t, ValidType("Income"))
	require.True(t, ValidType("Expense"))
	require.False(t, ValidType("Savings"))
	require.False(t, ValidType("income"))
}

func TestDefaultIsWellFormed(t *testing.T) {
	t.Parallel()
	for _, g := range Default() {
		require.True(t, ValidType(g.Type))
		require.NotEmpty(t, g.Categories)
		for _, c := range g.Categories {
			require.NotEmpty(t, c.Name)
			require.NotEmpty(t, c.Keywords)
		}
	}
}
