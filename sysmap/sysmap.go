package sysmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// RomsPrefix is the path root the canonical CSV paths carry and the systems
// file does not. Stripping it turns /roms/sega/sega32x into sega/sega32x.
const RomsPrefix = "/roms/"

// System is one row of the compatibility export.
type System struct {
	FullName     string
	Src          string // normalized source path, the value written to the systems file
	RetrobatPath string // RetroBat-side folder, informational only
}

// Mapping maps a short system id to its System record.
type Mapping map[string]System

// NormalizeSrc strips the leading roms root from a canonical path, once,
// anchored at the front. Paths without the prefix pass through unchanged.
func NormalizeSrc(canonical string) string {
	return strings.TrimPrefix(canonical, RomsPrefix)
}

// LoadCSV reads a 4-column systems export into a Mapping. Expected columns:
// full name, system id, RetroBat folder, canonical path. The header row is
// skipped unconditionally, rows with fewer than four columns are dropped, and
// a duplicate id keeps the last row seen. RetroBat exports the file as UTF-8
// with a byte-order mark, so the reader decodes through a BOM-aware decoder.
func LoadCSV(path string) (Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	reader.FieldsPerRecord = -1

	mapping := make(Mapping)
	header := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < 4 {
			continue
		}
		mapping[row[1]] = System{
			FullName:     row[0],
			Src:          NormalizeSrc(row[3]),
			RetrobatPath: row[2],
		}
	}

	return mapping, nil
}

// IDs returns the system ids longest first, ties broken alphabetically.
// Line matching walks this order so that the winner is deterministic when
// more than one id could claim a line.
func (m Mapping) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) > len(ids[j])
		}
		return ids[i] < ids[j]
	})
	return ids
}
