// internal/highscore/highscore.go
package highscore

import (
	"sort"
	"time"
)

// Entry is one line of the table.
type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	At    time.Time `json:"at"`
}

// Table keeps the best scores, highest first. Equal scores keep arrival order.
type Table struct {
	capacity int
	entries  []Entry
}

// NewTable creates an empty table holding at most capacity entries.
func NewTable(capacity int) *Table {
	if capacity < 1 {
		capacity = 1
	}
	return &Table{capacity: capacity}
}

// Qualifies reports whether score would make it onto the table.
func (t *Table) Qualifies(score int) bool {
	if len(t.entries) < t.capacity {
		return true
	}
	return score > t.entries[len(t.entries)-1].Score
}

// Add records a score and returns its rank (0-based), or -1 if it did not qualify.
func (t *Table) Add(name string, score int) int {
	if !t.Qualifies(score) {
		return -1
	}
	rank := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Score < score
	})
	e := Entry{Name: name, Score: score, At: time.Now().UTC()}
	t.entries = append(t.entries, Entry{})
	copy(t.entries[rank+1:], t.entries[rank:])
	t.entries[rank] = e
	if len(t.entries) > t.capacity {
		t.entries = t.entries[:t.capacity]
	}
	return rank
}

// Entries returns a copy of the table.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len is the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) load(entries []Entry) {
	t.entries = nil
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > t.capacity {
		sorted = sorted[:t.capacity]
	}
	t.entries = sorted
}
