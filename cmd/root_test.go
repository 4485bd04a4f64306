package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/parcel-cli/internal/config"
	"github.com/sells-group/parcel-cli/internal/record"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"enrich", "analyze", "compare", "split", "clean"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "parcel-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestEnrichCommand_Flags(t *testing.T) {
	for _, name := range []string{"input", "output", "limit", "dry-run", "skip-owners", "strict-progress"} {
		require.NotNil(t, enrichCmd.Flags().Lookup(name), "enrich command should have --%s flag", name)
	}

	assert.Equal(t, "0", enrichCmd.Flags().Lookup("limit").DefValue)
	assert.Equal(t, "false", enrichCmd.Flags().Lookup("dry-run").DefValue)
}

func TestAnalyzeCommand_Flags(t *testing.T) {
	flag := analyzeCmd.Flags().Lookup("format")
	require.NotNil(t, flag, "analyze command should have --format flag")
	assert.Equal(t, "text", flag.DefValue)
}

func TestSplitCommand_Flags(t *testing.T) {
	flag := splitCmd.Flags().Lookup("out-dir")
	require.NotNil(t, flag, "split command should have --out-dir flag")
	assert.Equal(t, "by-county", flag.DefValue)
}

func TestCleanCommand_Flags(t *testing.T) {
	for _, name := range []string{"output", "phones", "addresses", "fill-county", "phone-column"} {
		require.NotNil(t, cleanCmd.Flags().Lookup(name), "clean command should have --%s flag", name)
	}
}

func TestColumnsFromConfig(t *testing.T) {
	prev := cfg
	defer func() { cfg = prev }()

	cfg = &config.Config{
		Columns: config.ColumnsConfig{
			Street: "StreetAddress",
			City:   "City",
			State:  "State",
			Zip:    "Zipcode",
			County: "CountyName",
			Owner:  "OwnerName",
		},
	}

	assert.Equal(t, record.DefaultColumns(), columnsFromConfig())
}
