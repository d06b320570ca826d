package play

import (
	"github.com/npillmayer/herbert/level"
)

// Records keeps the best points reached per level. Levels are identified by
// their content, so a renamed copy of a level shares its record.
// Records are not safe for concurrent use.
type Records struct {
	best map[string]int // level fingerprint -> points
}

// NewRecords creates an empty table of records.
func NewRecords() *Records {
	return &Records{best: make(map[string]int)}
}

// Best returns the record for a level, or 0.
func (r *Records) Best(lvl *level.Level) int {
	return r.best[lvl.Fingerprint()]
}

// Len returns the number of levels with a record.
func (r *Records) Len() int {
	return len(r.best)
}

// submit enters points for a level with fingerprint fp. Returns true for a
// new record.
func (r *Records) submit(fp string, points int) bool {
	if points <= r.best[fp] {
		return false
	}
	r.best[fp] = points
	return true
}
