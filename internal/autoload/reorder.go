package autoload

import "strings"

// Reorder moves every entry matched by a promotion fragment to the front.
//
// Fragments are processed in order; each claims, in load order, the entries
// whose Value contains it and that no earlier fragment claimed. Unclaimed
// entries follow in their original order. The input is not modified.
func Reorder(entries EntryList, promotions PromotionSet) EntryList {
	out := make(EntryList, 0, len(entries))
	if len(promotions) == 0 {
		return append(out, entries...)
	}

	claimed := make([]bool, len(entries))
	for _, fragment := range promotions {
		for i, e := range entries {
			if claimed[i] || !strings.Contains(e.Value, fragment) {
				continue
			}
			claimed[i] = true
			out = append(out, e)
		}
	}

	for i, e := range entries {
		if !claimed[i] {
			out = append(out, e)
		}
	}
	return out
}

// IsPromoted reports whether entries are already in promoted order
func IsPromoted(entries EntryList, promotions PromotionSet) bool {
	return len(Diff(entries, Reorder(entries, promotions))) == 0
}

// Move records an entry whose position changed
type Move struct {
	Key   string
	Value string
	From  int
	To    int
}

// Diff lists the entries of after that sit at a different index in before
func Diff(before, after EntryList) []Move {
	index := make(map[string]int, len(before))
	for i, e := range before {
		index[e.Key] = i
	}

	var moves []Move
	for to, e := range after {
		from, ok := index[e.Key]
		if !ok {
			from = -1
		}
		if from != to {
			moves = append(moves, Move{Key: e.Key, Value: e.Value, From: from, To: to})
		}
	}
	return moves
}
