package store

import (
	"strconv"
	"time"

	"github.com/kenzie-cloud/portal/internal/loyalty"
)

// idSequence hands out customer ids derived from the creation time in
// Unix milliseconds. A candidate that was already handed out, or that
// taken reports as in use, is bumped by one until it is free, so ids stay
// unique and increasing. Callers hold the MemoryStore write lock.
type idSequence struct {
	last int64
}

func (s *idSequence) next(now time.Time, taken func(loyalty.ID) bool) loyalty.ID {
	n := now.UnixMilli()
	if n <= s.last {
		n = s.last + 1
	}
	id := loyalty.ID(strconv.FormatInt(n, 10))
	for taken(id) {
		n++
		id = loyalty.ID(strconv.FormatInt(n, 10))
	}
	s.last = n
	return id
}
