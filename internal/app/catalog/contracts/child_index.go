package contracts

import "strings"

// ChildIndex tracks which child rows exist per car and hands out the next
// free position for new ones.
type ChildIndex struct {
	rows map[string]bool
	next map[string]int64
}

// NewChildIndex creates an empty index.
func NewChildIndex() *ChildIndex {
	return &ChildIndex{rows: make(map[string]bool), next: make(map[string]int64)}
}

func rowKey(carID string, key []string) string {
	return carID + "\x00" + strings.Join(key, "\x00")
}

// Observe records a stored row.
func (ix *ChildIndex) Observe(carID string, position int64, key ...string) {
	ix.rows[rowKey(carID, key)] = true
	if position >= ix.next[carID] {
		ix.next[carID] = position + 1
	}
}

// Claim reports whether the row already exists. For a new row it returns the
// position to insert at and records the row, so a repeat of the same key in
// one import becomes an update.
func (ix *ChildIndex) Claim(carID string, key ...string) (position int64, exists bool) {
	k := rowKey(carID, key)
	if ix.rows[k] {
		return 0, true
	}
	position = ix.next[carID]
	ix.rows[k] = true
	ix.next[carID] = position + 1
	return position, false
}
