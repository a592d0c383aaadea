/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/Seednode/guesswho/guesswho"
	"gopkg.in/yaml.v3"
)

//go:embed data/characters.yaml
var defaultRoster []byte

// loadRoster reads the roster named by --roster, or the built-in one.
func loadRoster(cfg *Config) (*guesswho.Roster, error) {
	data, source := defaultRoster, "built-in roster"

	if cfg.roster != "" {
		var err error
		data, err = os.ReadFile(cfg.roster)
		if err != nil {
			return nil, err
		}
		source = cfg.roster
	}

	roster, err := parseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	logf(cfg, "ROSTER: Loaded %d characters (%s) from %s",
		roster.Len(),
		humanReadableSize(int64(len(data))),
		source,
	)

	return roster, nil
}

// parseRoster accepts YAML or JSON, either as a bare list of characters or
// as a mapping with a "characters" list. Each character is a flat mapping
// of name, optional filename, and the nine traits.
func parseRoster(data []byte) (*guesswho.Roster, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	if m, ok := doc.(map[string]any); ok {
		doc = m["characters"]
	}

	entries, ok := doc.([]any)
	if !ok {
		return nil, errors.New("roster must be a list of characters")
	}

	records := make([]guesswho.Record, 0, len(entries))
	for i, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: %w: not a mapping", i, guesswho.ErrMalformedCharacter)
		}

		rec := guesswho.Record{
			Traits: make(map[string]any, len(fields)),
		}
		for k, v := range fields {
			switch k {
			case "name":
				if v != nil {
					rec.Name = fmt.Sprint(v)
				}
			case "filename":
				if v != nil {
					rec.Asset = fmt.Sprint(v)
				}
			default:
				rec.Traits[k] = v
			}
		}

		records = append(records, rec)
	}

	return guesswho.NewRoster(records)
}
