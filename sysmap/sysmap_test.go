package sysmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSrc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/roms/sega/sega32x", "sega/sega32x"},
		{"/roms/nintendo/nes", "nintendo/nes"},
		{"/roms/roms/weird", "roms/weird"},
		{"sega/sega32x", "sega/sega32x"},
		{"/rom/sega32x", "/rom/sega32x"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeSrc(tt.input); got != tt.expected {
				t.Errorf("NormalizeSrc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "systems.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	// Leading bytes are the UTF-8 BOM RetroBat exports carry.
	content := "\xef\xbb\xbfFull Name,System,RetroBat Path,RetroNAS Path\n" +
		"Sega 32X,sega32x,roms\\sega32x,/roms/sega/sega32x\n" +
		"\"Nintendo Entertainment System, Famicom\",nes,roms\\nes,/roms/nintendo/nes\n" +
		"Short Row,broken\n" +
		"Sony PlayStation,psx,roms\\psx,/roms/sony/psx\n"

	mapping, err := LoadCSV(writeCSV(t, content))
	require.NoError(t, err)

	require.Len(t, mapping, 3)
	assert.Equal(t, System{
		FullName:     "Sega 32X",
		Src:          "sega/sega32x",
		RetrobatPath: `roms\sega32x`,
	}, mapping["sega32x"])
	assert.Equal(t, "Nintendo Entertainment System, Famicom", mapping["nes"].FullName)
	assert.NotContains(t, mapping, "broken")
}

func TestLoadCSVWithoutBOM(t *testing.T) {
	content := "Full Name,System,RetroBat Path,RetroNAS Path\n" +
		"Sega 32X,sega32x,roms\\sega32x,/roms/sega/sega32x\n"

	mapping, err := LoadCSV(writeCSV(t, content))
	require.NoError(t, err)
	require.Len(t, mapping, 1)
	assert.Equal(t, "sega/sega32x", mapping["sega32x"].Src)
}

func TestLoadCSVDuplicateIDLastWins(t *testing.T) {
	content := "Full Name,System,RetroBat Path,RetroNAS Path\n" +
		"Sega 32X,sega32x,roms\\sega32x,/roms/sega/old\n" +
		"Sega 32X,sega32x,roms\\sega32x,/roms/sega/sega32x\n"

	mapping, err := LoadCSV(writeCSV(t, content))
	require.NoError(t, err)
	require.Len(t, mapping, 1)
	assert.Equal(t, "sega/sega32x", mapping["sega32x"].Src)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestIDsOrder(t *testing.T) {
	mapping := Mapping{
		"psx":     {},
		"psxmini": {},
		"nes":     {},
		"snes":    {},
	}

	ids := mapping.IDs()
	assert.Equal(t, []string{"psxmini", "snes", "nes", "psx"}, ids)
}
