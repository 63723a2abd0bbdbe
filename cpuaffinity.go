package actiontrack

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseCores parses a CPU core list such as "4-7" or "0,2,4-5" into sorted
// unique core numbers
func ParseCores(s string) ([]int, error) {

	s = strings.TrimSpace(s)

	if s == "" {
		return nil, fmt.Errorf("empty core list")
	}

	seen := make(map[int]bool)

	for _, part := range strings.Split(s, ",") {

		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")

		first, err := strconv.Atoi(strings.TrimSpace(lo))

		if err != nil || first < 0 {
			return nil, fmt.Errorf("invalid core %q in %q", part, s)
		}

		last := first

		if isRange {
			last, err = strconv.Atoi(strings.TrimSpace(hi))

			if err != nil || last < first {
				return nil, fmt.Errorf("invalid core range %q in %q", part, s)
			}
		}

		for core := first; core <= last; core++ {
			seen[core] = true
		}
	}

	cores := make([]int, 0, len(seen))

	for core := range seen {
		cores = append(cores, core)
	}

	sort.Ints(cores)

	return cores, nil
}
