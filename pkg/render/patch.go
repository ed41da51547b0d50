package render

import "hash/fnv"

// PatchOp is a single keyed transformation turning one rendered fragment
// list into another. The builder surface applies these to the live preview
// instead of re-rendering the whole canvas after every edit.
type PatchOp struct {
	Type  PatchOpType `json:"type" msgpack:"type"`
	Key   string      `json:"key" msgpack:"key"`
	Index int         `json:"index,omitempty" msgpack:"index,omitempty"`
	HTML  string      `json:"html,omitempty" msgpack:"html,omitempty"`
}

// PatchOpType indicates the kind of list operation.
type PatchOpType int

const (
	// PatchInsert adds a fragment at Index.
	PatchInsert PatchOpType = iota
	// PatchDelete removes a fragment.
	PatchDelete
	// PatchMove relocates a fragment to Index.
	PatchMove
	// PatchUpdate replaces a fragment's content in place.
	PatchUpdate
)

func (t PatchOpType) String() string {
	switch t {
	case PatchInsert:
		return "insert"
	case PatchDelete:
		return "delete"
	case PatchMove:
		return "move"
	case PatchUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// ComputePatch generates the operations that transform prev into next,
// keyed by fragment id. Deletions come first, then inserts and in-place
// updates; when the lists hold the same content in a different order, the
// changed positions are sent as moves.
func ComputePatch(prev, next []Fragment) []PatchOp {
	ops := make([]PatchOp, 0)

	prevIndex := make(map[string]int, len(prev))
	for i, f := range prev {
		prevIndex[f.ID] = i
	}
	nextIndex := make(map[string]int, len(next))
	for i, f := range next {
		nextIndex[f.ID] = i
	}

	for _, f := range prev {
		if _, ok := nextIndex[f.ID]; !ok {
			ops = append(ops, PatchOp{Type: PatchDelete, Key: f.ID})
		}
	}

	for i, f := range next {
		prevIdx, existed := prevIndex[f.ID]
		switch {
		case !existed:
			ops = append(ops, PatchOp{Type: PatchInsert, Key: f.ID, Index: i, HTML: f.HTML})
		case contentHash(prev[prevIdx].HTML) != contentHash(f.HTML):
			ops = append(ops, PatchOp{Type: PatchUpdate, Key: f.ID, HTML: f.HTML})
		}
	}

	// Pure reorder: same members, same content, different positions.
	if len(ops) == 0 {
		for i, f := range next {
			if prevIndex[f.ID] != i {
				ops = append(ops, PatchOp{Type: PatchMove, Key: f.ID, Index: i})
			}
		}
	}

	return ops
}

func contentHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
