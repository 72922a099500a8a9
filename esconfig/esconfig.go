// Package esconfig reads a RetroBat es_systems.cfg, the EmulationStation
// system list RetroBat ships, and cross-checks it against the CSV mapping.
// Read-only: nothing here ever writes the XML back.
package esconfig

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"retrosync/sysmap"
)

const (
	systemListElement = "systemList"
	systemElement     = "system"
	nameElement       = "name"
	fullNameElement   = "fullname"
	pathElement       = "path"
)

// System is one <system> entry from es_systems.cfg.
type System struct {
	Name     string
	FullName string
	Path     string
}

// Config is a parsed es_systems.cfg.
type Config struct {
	systems []System
	byName  map[string]System
}

// Parse reads es_systems.cfg XML. Systems without a <name> are dropped; a
// duplicate name keeps the last entry, matching how EmulationStation resolves
// them.
func Parse(b []byte) (*Config, error) {
	document := etree.NewDocument()
	if err := document.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("failed to parse es_systems XML: %w", err)
	}

	root := document.SelectElement(systemListElement)
	if root == nil {
		return nil, fmt.Errorf("no <%s> root element", systemListElement)
	}

	config := &Config{byName: make(map[string]System)}
	for _, element := range root.SelectElements(systemElement) {
		system := System{
			Name:     childText(element, nameElement),
			FullName: childText(element, fullNameElement),
			Path:     childText(element, pathElement),
		}
		if system.Name == "" {
			continue
		}
		config.systems = append(config.systems, system)
		config.byName[system.Name] = system
	}

	return config, nil
}

// Load reads and parses an es_systems.cfg file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read es_systems file: %w", err)
	}
	return Parse(b)
}

func childText(element *etree.Element, name string) string {
	child := element.FindElement(name)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// Lookup returns the system with the given name.
func (c *Config) Lookup(name string) (System, bool) {
	system, ok := c.byName[name]
	return system, ok
}

// Names returns all system names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PathMismatch pairs a CSV RetroBat path with the es_systems path that
// disagrees with it.
type PathMismatch struct {
	ID      string
	CSVPath string
	ESPath  string
}

// CrossCheck compares the CSV mapping against the parsed system list.
// MissingFromES holds CSV ids with no <system> entry, ExtraInES holds
// <system> names the CSV never mentions, and PathMismatches holds ids whose
// RetroBat folder disagrees between the two files. All slices are sorted.
func (c *Config) CrossCheck(mapping sysmap.Mapping) (missingFromES, extraInES []string, mismatches []PathMismatch) {
	for _, id := range mapping.IDs() {
		system, ok := c.byName[id]
		if !ok {
			missingFromES = append(missingFromES, id)
			continue
		}
		csvPath := normalizePath(mapping[id].RetrobatPath)
		esPath := normalizePath(system.Path)
		if csvPath != "" && esPath != "" && csvPath != esPath {
			mismatches = append(mismatches, PathMismatch{
				ID:      id,
				CSVPath: mapping[id].RetrobatPath,
				ESPath:  system.Path,
			})
		}
	}
	sort.Strings(missingFromES)

	for name := range c.byName {
		if _, ok := mapping[name]; !ok {
			extraInES = append(extraInES, name)
		}
	}
	sort.Strings(extraInES)

	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].ID < mismatches[j].ID })
	return missingFromES, extraInES, mismatches
}

// normalizePath reduces the two files' spellings of a RetroBat ROM folder to
// a comparable form: backslashes become slashes, dot segments and the
// %ROMPATH% placeholder are dropped, and a leading roms/ segment is removed.
// .\..\roms\sega32x, %ROMPATH%\sega32x, and roms\sega32x all reduce to
// sega32x.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	parts := strings.Split(p, "/")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".", "..", "%ROMPATH%":
			continue
		default:
			cleaned = append(cleaned, part)
		}
	}
	if len(cleaned) > 0 && cleaned[0] == "roms" {
		cleaned = cleaned[1:]
	}
	return strings.Join(cleaned, "/")
}
