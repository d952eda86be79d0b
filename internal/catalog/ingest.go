package catalog

import (
	"math"
	"strconv"
	"strings"

	"trip-planner-service/internal/domain"
)

// RawRow is one loosely-typed row from a tabular import. Header spellings
// vary between source spreadsheets, so field lookup goes through prioritized
// alias lists rather than fixed keys.
type RawRow map[string]any

var (
	companyAliases = []string{"company", "company name", "customer", "name", "client"}
	addressAliases = []string{"address", "delivery address", "street address", "addr", "location"}
	skidAliases    = []string{"skids", "skid count", "pallets", "pallet count", "qty", "quantity"}
)

// Ingest normalizes raw tabular rows into typed deliveries.
//
// A row is dropped when no company name or no address can be resolved; a
// missing or non-numeric skid count defaults to 1 and is never a rejection
// reason. Ids are assigned sequentially from 1 in row order. The function is
// a pure transformation; session reset side effects belong to the caller.
func Ingest(rows []RawRow) []*domain.Delivery {
	deliveries := make([]*domain.Delivery, 0, len(rows))

	next := 1
	for _, row := range rows {
		fields := normalizeKeys(row)

		company, ok := resolveString(fields, companyAliases)
		if !ok {
			continue
		}
		address, ok := resolveString(fields, addressAliases)
		if !ok {
			continue
		}

		deliveries = append(deliveries, &domain.Delivery{
			ID:      next,
			Company: company,
			Address: address,
			Skids:   resolveSkids(fields),
		})
		next++
	}

	return deliveries
}

// normalizeKeys lowercases and trims header names so alias lookup is
// insensitive to spreadsheet formatting.
func normalizeKeys(row RawRow) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		nk := strings.ToLower(strings.Join(strings.Fields(k), " "))
		if nk == "" {
			continue
		}
		if _, exists := out[nk]; exists {
			continue
		}
		out[nk] = v
	}
	return out
}

func resolveString(fields map[string]any, aliases []string) (string, bool) {
	for _, alias := range aliases {
		v, ok := fields[alias]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// resolveSkids extracts a positive integer skid count, defaulting to 1.
// JSON decoding hands numbers over as float64; spreadsheet exports often
// carry them as strings.
func resolveSkids(fields map[string]any) int {
	for _, alias := range skidAliases {
		v, ok := fields[alias]
		if !ok {
			continue
		}

		switch n := v.(type) {
		case float64:
			if n >= 1 && n == math.Trunc(n) {
				return int(n)
			}
		case int:
			if n >= 1 {
				return n
			}
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && parsed >= 1 {
				return parsed
			}
		}
	}
	return 1
}
