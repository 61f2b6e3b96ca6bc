// Package versions orders npm version strings by semantic-version precedence.
//
// Versions are parsed strictly (MAJOR.MINOR.PATCH with optional pre-release
// and build metadata, no "v" prefix) using Masterminds/semver. Pre-release
// identifiers compare per the semver algorithm and build metadata is ignored.
//
// Registry keys that do not parse are a data-integrity problem upstream.
// They are never rejected: they sort after every valid version, ordered among
// themselves by plain string comparison.
package versions

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compare returns -1, 0 or +1 as a is lower than, equal to or higher than b.
//
// Any valid version is higher than any invalid one. Two invalid versions
// compare as strings.
func Compare(a, b string) int {
	return compareParsed(parse(a), parse(b))
}

// Valid reports whether v is a strict semantic version.
func Valid(v string) bool {
	_, err := semver.StrictNewVersion(v)
	return err == nil
}

// SortDescending returns a new slice holding vs ordered newest first.
// Versions with equal precedence (differing only in build metadata) are
// ordered by their raw string so the result does not depend on input order.
func SortDescending(vs []string) []string {
	items := make([]item, len(vs))
	for i, v := range vs {
		items[i] = parse(v)
	}

	slices.SortStableFunc(items, func(a, b item) int {
		if c := compareParsed(b, a); c != 0 {
			return c
		}
		return strings.Compare(b.raw, a.raw)
	})

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.raw
	}
	return out
}

// Max returns the highest version in vs, or "" if vs is empty.
func Max(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return SortDescending(vs)[0]
}

type item struct {
	raw string
	v   *semver.Version
}

func parse(raw string) item {
	v, err := semver.StrictNewVersion(raw)
	if err != nil {
		return item{raw: raw}
	}
	return item{raw: raw, v: v}
}

func compareParsed(a, b item) int {
	switch {
	case a.v != nil && b.v != nil:
		return a.v.Compare(b.v)
	case a.v != nil:
		return 1
	case b.v != nil:
		return -1
	default:
		return cmp.Compare(a.raw, b.raw)
	}
}
