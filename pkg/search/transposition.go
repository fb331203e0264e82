package search

import (
	"fmt"
	"math/bits"

	"github.com/herohde/randochess/pkg/board"
	"github.com/herohde/randochess/pkg/score"
)

// Parameters describes the search context that produced a table entry: how many plies of
// subtree it summarizes, and the dead-move count of the position it was computed at. Both are
// needed to judge whether an entry from a different call can be trusted, since the 50-move
// draw horizon shifts with dead_moves and a stale entry may predate a horizon it would now
// cross.
type Parameters struct {
	Depth     int
	DeadMoves int
}

// saw50 reports whether the subtree summarized by p could have reached the 50-dead-move draw
// within its own depth, i.e. whether the draw horizon is within reach of what was searched.
func saw50(p Parameters) bool {
	return 50-p.DeadMoves <= p.Depth
}

// betterThan reports whether an entry computed with parameters a can be trusted by a caller
// with parameters b: a is at least as deep, and either the dead-move counts agree or neither
// side's subtree could have seen the 50-move horizon (so the discrepancy cannot matter).
func betterThan(a, b Parameters) bool {
	return a.Depth >= b.Depth && (a.DeadMoves == b.DeadMoves || (!saw50(a) && !saw50(b)))
}

// shouldReplace reports whether a fresh entry computed with parameters a should overwrite an
// existing entry with parameters b.
func shouldReplace(a, b Parameters) bool {
	return a.Depth >= b.Depth || (a.DeadMoves != b.DeadMoves && (saw50(a) || saw50(b)))
}

// entry is a transposition table slot. 1 bit of validity plus a full 64-bit key is kept for
// collision rejection, since collisions between a power-of-two-sized table's index space are
// otherwise silently tolerated.
type entry struct {
	valid   bool
	hash    board.ZobristHash
	params  Parameters
	payload score.ScoreInfo
}

// Stats are observability counters. They are read without synchronization and must never
// influence search behavior.
type Stats struct {
	Attempts  uint64
	Additions uint64
	Overwrites uint64
	Hits       uint64
}

// Table is the transposition table: a fixed-capacity, power-of-two-sized array of entries
// keyed by Zobrist hash, replaced in place according to the rules in betterThan/shouldReplace.
// The search is single-threaded and synchronous, so no locking is required; this is a plain
// slice, not a lock-free structure.
type Table struct {
	entries []entry
	mask    uint64
	used    uint64
	stats   Stats
}

// NewTable allocates a table of sizeBytes/32 entries, rounded down to a power of two (at least
// one entry). 32 bytes is the nominal per-entry size used for sizing and by Size; an entry value
// in memory is larger (40 bytes on 64-bit platforms), so the allocation exceeds sizeBytes.
func NewTable(sizeBytes uint64) *Table {
	const entrySize = 32 // nominal bytes per entry.
	n := sizeBytes / entrySize
	if n == 0 {
		n = 1
	}
	order := 63 - bits.LeadingZeros64(n)
	capacity := uint64(1) << order

	return &Table{
		entries: make([]entry, capacity),
		mask:    capacity - 1,
	}
}

func (t *Table) index(hash board.ZobristHash) uint64 {
	return uint64(hash) & t.mask
}

// Get returns the payload for hash iff the slot holds the same key and its parameters are
// trustworthy for a caller with the given parameters (see betterThan).
func (t *Table) Get(hash board.ZobristHash, params Parameters) (score.ScoreInfo, bool) {
	t.stats.Attempts++

	e := &t.entries[t.index(hash)]
	if !e.valid || e.hash != hash || !betterThan(e.params, params) {
		return score.ScoreInfo{}, false
	}
	t.stats.Hits++
	return e.payload, true
}

// GetLenient returns the payload for hash iff the slot holds the same key, ignoring
// parameters entirely. Used only for move-ordering lookups, where a merely-plausible score is
// good enough to sort candidates.
func (t *Table) GetLenient(hash board.ZobristHash) (score.ScoreInfo, bool) {
	e := &t.entries[t.index(hash)]
	if !e.valid || e.hash != hash {
		return score.ScoreInfo{}, false
	}
	return e.payload, true
}

// Insert stores payload under hash and params, honoring the replacement policy: an empty slot
// is always filled, a slot with a different key is always overwritten (collision), and a slot
// with the same key is overwritten only if params should replace the resident entry's.
func (t *Table) Insert(hash board.ZobristHash, params Parameters, payload score.ScoreInfo) {
	idx := t.index(hash)
	e := &t.entries[idx]

	switch {
	case !e.valid:
		t.used++
		t.stats.Additions++
	case e.hash != hash:
		t.stats.Overwrites++
	case shouldReplace(params, e.params):
		t.stats.Overwrites++
	default:
		return
	}

	e.valid = true
	e.hash = hash
	e.params = params
	e.payload = payload
}

// Size returns the nominal size of the table in bytes: 32 bytes per entry.
func (t *Table) Size() uint64 {
	return uint64(len(t.entries)) * 32
}

// Used returns the utilization as a fraction in [0, 1].
func (t *Table) Used() float64 {
	return float64(t.used) / float64(len(t.entries))
}

// StatsSnapshot returns a copy of the current observability counters.
func (t *Table) StatsSnapshot() Stats {
	return t.stats
}

func (t *Table) String() string {
	return fmt.Sprintf("TT[%v entries @ %v%%]", len(t.entries), int(100*t.Used()))
}
