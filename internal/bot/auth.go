package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// AllowedIDs is the set of user ids that may trigger non-public handlers.
type AllowedIDs map[int64]struct{}

func NewAllowedIDs(ids ...int64) AllowedIDs {
	set := make(AllowedIDs, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// ParseAllowedIDs parses a comma-separated list of numeric user ids. Blank
// entries are skipped; anything else that is not an integer is an error.
func ParseAllowedIDs(csv string) (AllowedIDs, error) {
	set := AllowedIDs{}
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", part, err)
		}
		set[id] = struct{}{}
	}
	return set, nil
}

// Contains is safe on a nil set.
func (a AllowedIDs) Contains(id int64) bool {
	_, ok := a[id]
	return ok
}
