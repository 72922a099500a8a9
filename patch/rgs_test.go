package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrosync/sysmap"
)

func testMapping() sysmap.Mapping {
	return sysmap.Mapping{
		"sega32x": {FullName: "Sega 32X", Src: "sega/sega32x", RetrobatPath: `roms\sega32x`},
		"nes":     {FullName: "Nintendo Entertainment System", Src: "nintendo/nes", RetrobatPath: `roms\nes`},
		"psx":     {FullName: "Sony PlayStation", Src: "sony/psx", RetrobatPath: `roms\psx`},
	}
}

func TestSyncRGSInsertsFieldAfterMarker(t *testing.T) {
	lines := []string{
		`  - { name: "Sega 32X", src: "sega/oldpath", retrobat: "sega32x", core: "picodrive" }` + "\n",
	}

	result := SyncRGS(lines, testMapping())

	assert.Equal(t,
		`  - { name: "Sega 32X", src: "sega/sega32x", retrobat: "sega32x", retrobat_rgs: "sega32x", core: "picodrive" }`+"\n",
		lines[0])
	assert.Equal(t, 1, result.SrcUpdated)
	assert.Equal(t, 1, result.RGSAdded)
	assert.Equal(t, 0, result.RGSUpdated)
}

func TestSyncRGSUpdatesExistingField(t *testing.T) {
	lines := []string{
		`  - { src: "nintendo/nes", retrobat: "nes", retrobat_rgs: "famicom", }` + "\n",
	}

	result := SyncRGS(lines, testMapping())

	assert.Contains(t, lines[0], `retrobat_rgs: "nes"`)
	assert.Equal(t, 1, result.RGSUpdated)
	assert.Equal(t, 0, result.RGSAdded)
	assert.Equal(t, 0, result.SrcUpdated)
}

func TestSyncRGSMatchesOnSrcPath(t *testing.T) {
	// No retrobat field at all; the expected src path claims the line and an
	// empty-valued rgs field gets corrected.
	lines := []string{
		`  - { src: "sony/psx", retrobat_rgs: "" }` + "\n",
	}

	result := SyncRGS(lines, testMapping())

	assert.Contains(t, lines[0], `retrobat_rgs: "psx"`)
	assert.Equal(t, 1, result.RGSUpdated)
}

func TestSyncRGSAlreadyCurrent(t *testing.T) {
	line := `  - { src: "sega/sega32x", retrobat: "sega32x", retrobat_rgs: "sega32x", }` + "\n"
	lines := []string{line}

	result := SyncRGS(lines, testMapping())

	assert.Equal(t, line, lines[0])
	assert.False(t, result.Changed())
	assert.Empty(t, result.Changes)
}

func TestSyncRGSSkipsLineWithoutSrc(t *testing.T) {
	line := `  - { name: "Sega 32X", retrobat: "sega32x" }` + "\n"
	lines := []string{line}

	result := SyncRGS(lines, testMapping())

	assert.Equal(t, line, lines[0])
	assert.False(t, result.Changed())
}

func TestSyncRGSNoMarkerNoInsert(t *testing.T) {
	// Known src path but no retrobat marker to anchor the insert on: the src
	// stays correct and the line gains nothing.
	line := `  - { src: "sony/psx", core: "duckstation" }` + "\n"
	lines := []string{line}

	result := SyncRGS(lines, testMapping())

	assert.Equal(t, line, lines[0])
	assert.False(t, result.Changed())
}

func TestSyncRGSLeavesUnknownLinesAlone(t *testing.T) {
	lines := []string{
		"---\n",
		"# RetroNAS systems\n",
		"retronas_systems:\n",
		`  - { src: "atari/jaguar", retrobat: "jaguar" }` + "\n",
		"\n",
	}
	original := strings.Join(lines, "")

	result := SyncRGS(lines, testMapping())

	assert.Equal(t, original, strings.Join(lines, ""))
	assert.False(t, result.Changed())
}

func TestSyncRGSIdempotent(t *testing.T) {
	lines := []string{
		"retronas_systems:\n",
		`  - { name: "Sega 32X", src: "sega/oldpath", retrobat: "sega32x", }` + "\n",
		`  - { name: "NES", src: "nintendo/nes", retrobat: "nes", retrobat_rgs: "nes", }` + "\n",
	}

	first := SyncRGS(lines, testMapping())
	require.True(t, first.Changed())

	after := strings.Join(lines, "")
	second := SyncRGS(lines, testMapping())

	assert.False(t, second.Changed())
	assert.Equal(t, after, strings.Join(lines, ""))
}

func TestCheckYAML(t *testing.T) {
	good := []string{
		"retronas_systems:\n",
		`  - { name: "Sega 32X", src: "sega/sega32x" }` + "\n",
	}
	require.NoError(t, CheckYAML(good))

	bad := []string{
		"retronas_systems:\n",
		"  - { name: \"unterminated\n",
	}
	require.Error(t, CheckYAML(bad))
}
