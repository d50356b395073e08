package coord

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSpec parses a region spec of the form "name:start-end" or
// "name:start-end:strand", with strand written as 1, -1, + or -.
// Reference names may themselves contain colons, so the spec is split
// from the right.
func ParseSpec(spec string) (name string, start, end int64, strand int, err error) {
	strand = 1

	rest := spec
	// Optional trailing strand.
	if i := strings.LastIndex(rest, ":"); i >= 0 {
		switch rest[i+1:] {
		case "1", "+":
			rest = rest[:i]
		case "-1", "-":
			strand = -1
			rest = rest[:i]
		}
	}

	name, start, end, err = parseSpan(rest)
	if err != nil && rest != spec {
		// The trailing token looked like a strand but was the end
		// coordinate, as in "p1:9500-1".
		if n, s, e, err2 := parseSpan(spec); err2 == nil {
			return n, s, e, 1, nil
		}
	}
	if err != nil {
		return "", 0, 0, 0, err
	}
	return name, start, end, strand, nil
}

func parseSpan(spec string) (name string, start, end int64, err error) {
	i := strings.LastIndex(spec, ":")
	if i < 0 {
		return "", 0, 0, fmt.Errorf("region spec %q: want name:start-end[:strand]", spec)
	}
	name = spec[:i]
	span := spec[i+1:]

	j := strings.Index(span, "-")
	// A leading "-" belongs to a negative start, not the separator.
	if j == 0 {
		j = strings.Index(span[1:], "-")
		if j >= 0 {
			j++
		}
	}
	if name == "" || j < 0 {
		return "", 0, 0, fmt.Errorf("region spec %q: want name:start-end[:strand]", spec)
	}

	start, err = strconv.ParseInt(span[:j], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("region spec %q: bad start: %w", spec, err)
	}
	end, err = strconv.ParseInt(span[j+1:], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("region spec %q: bad end: %w", spec, err)
	}
	return name, start, end, nil
}
