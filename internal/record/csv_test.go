package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "props.csv")
	data := "StreetAddress,City,State,Zipcode,CountyName\n" +
		"123 Peachtree St,Atlanta,GA,30303,Fulton County\n" +
		"456 Oak Ave,Decatur,GA,30030,\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	s, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"StreetAddress", "City", "State", "Zipcode", "CountyName"}, s.Header())
	assert.Equal(t, "Fulton County", s.Value(0, "CountyName"))
	assert.Equal(t, "", s.Value(1, "CountyName"))
}

func TestLoadCSV_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCSV(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = LoadCSV(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")

	data := "StreetAddress,City,State,Zipcode,CountyName,Notes\n" +
		"123 Peachtree St,Atlanta,GA,30303,,\"has, comma\"\n" +
		"456 Oak Ave,Decatur,GA,30030,UNKNOWN,plain\n"
	require.NoError(t, os.WriteFile(in, []byte(data), 0o600))

	s, err := LoadCSV(in)
	require.NoError(t, err)
	require.NoError(t, s.Set(0, "CountyName", "Fulton County"))
	require.NoError(t, s.WriteCSV(out))

	got, err := LoadCSV(out)
	require.NoError(t, err)
	assert.Equal(t, s.Header(), got.Header())
	assert.Equal(t, "Fulton County", got.Value(0, "CountyName"))

	// Passthrough cells survive byte-for-byte; unresolved sentinel unchanged.
	assert.Equal(t, "has, comma", got.Value(0, "Notes"))
	assert.Equal(t, "UNKNOWN", got.Value(1, "CountyName"))
	assert.Equal(t, s.Row(1), got.Row(1))
}

func TestWriteCSV_PadsShortRows(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")

	s, err := New(
		[]string{"StreetAddress", "City", "CountyName"},
		[][]string{{"123 Main St"}},
	)
	require.NoError(t, err)
	require.NoError(t, s.WriteCSV(out))

	got, err := LoadCSV(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"123 Main St", "", ""}, got.Row(0))
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "props.csv")
	require.NoError(t, os.WriteFile(path, []byte("City\nAtlanta\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	_, err = Load(filepath.Join(dir, "missing.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx")
}
