// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"strings"
)

// ParseReservations splits a comma-separated list of region names. Entries
// are trimmed and empties dropped, so "" means no reservations.
func ParseReservations(s string) []Region {
	var regions []Region
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		regions = append(regions, Region(part))
	}
	return regions
}

// Candidate is one parsed "name;region" setup entry.
type Candidate struct {
	Name   Name
	Region Region
}

// ParseCandidates splits a comma-separated list of "name;region" pairs. An
// entry that does not split into exactly two non-empty parts fails the whole
// parse, so setup is all-or-nothing.
func ParseCandidates(s string) ([]Candidate, error) {
	var candidates []Candidate
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, region, found := strings.Cut(entry, ";")
		name = strings.TrimSpace(name)
		region = strings.TrimSpace(region)
		if !found || name == "" || region == "" {
			return nil, fmt.Errorf("%w: could not split %q at ';'", ErrMalformedCandidate, entry)
		}
		candidates = append(candidates, Candidate{Name: Name(name), Region: Region(region)})
	}
	return candidates, nil
}
