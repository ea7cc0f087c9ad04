package feed

import (
	"container/heap"
	"sort"
)

// newer reports whether a orders before b in a feed: creation timestamp
// descending, content ID descending on equal timestamps. IDs are unique, so
// the order is total and repeated requests see the same interleaving.
func newer(a, b candidate) bool {
	if !a.createdAt.Equal(b.createdAt) {
		return a.createdAt.After(b.createdAt)
	}
	return a.id > b.id
}

// sortCandidates orders a candidate set newest first with the deterministic
// tie-break.
func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return newer(cands[i], cands[j])
	})
}

// unionCandidates combines two candidate lists, de-duplicating by content ID
// with the first occurrence winning, and returns the union sorted newest
// first. Used to blend followed-author and followed-hashtag results, where
// one post can legitimately match both sources.
func unionCandidates(a, b []candidate) []candidate {
	seen := make(map[string]bool, len(a)+len(b))
	union := make([]candidate, 0, len(a)+len(b))
	for _, c := range a {
		if !seen[c.id] {
			seen[c.id] = true
			union = append(union, c)
		}
	}
	for _, c := range b {
		if !seen[c.id] {
			seen[c.id] = true
			union = append(union, c)
		}
	}
	sortCandidates(union)
	return union
}

// mergeByTime performs a stable two-pointer merge of two candidate streams
// already sorted newest first. Each pointer is independently bounded by
// limit and the merged output is capped at limit. The second return reports
// whether any considered candidates were discarded beyond the cap,
// including those cut by the per-stream bound itself.
func mergeByTime(a, b []candidate, limit int) ([]candidate, bool) {
	truncated := len(a) > limit || len(b) > limit
	if len(a) > limit {
		a = a[:limit]
	}
	if len(b) > limit {
		b = b[:limit]
	}

	merged := make([]candidate, 0, limit)
	seen := make(map[string]bool, limit)
	i, j := 0, 0
	for len(merged) < limit && (i < len(a) || j < len(b)) {
		var next candidate
		switch {
		case i >= len(a):
			next = b[j]
			j++
		case j >= len(b):
			next = a[i]
			i++
		case newer(b[j], a[i]):
			next = b[j]
			j++
		default:
			next = a[i]
			i++
		}
		if seen[next.id] {
			continue
		}
		seen[next.id] = true
		merged = append(merged, next)
	}

	leftover := truncated || i < len(a) || j < len(b)
	return merged, leftover
}

// candidateHeap orders stream heads newest first for the k-way merge
type candidateHeap []streamHead

type streamHead struct {
	cand   candidate
	stream int
	index  int
}

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return newer(h[i].cand, h[j].cand) }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(streamHead)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	head := old[n-1]
	*h = old[:n-1]
	return head
}

// mergeMany performs a heap-based k-way merge over any number of candidate
// streams, each already sorted newest first, de-duplicating by content ID
// and capping the output at limit.
func mergeMany(streams [][]candidate, limit int) ([]candidate, bool) {
	h := make(candidateHeap, 0, len(streams))
	for s, stream := range streams {
		if len(stream) > 0 {
			h = append(h, streamHead{cand: stream[0], stream: s, index: 0})
		}
	}
	heap.Init(&h)

	merged := make([]candidate, 0, limit)
	seen := make(map[string]bool, limit)
	for h.Len() > 0 && len(merged) < limit {
		head := heap.Pop(&h).(streamHead)
		if !seen[head.cand.id] {
			seen[head.cand.id] = true
			merged = append(merged, head.cand)
		}
		next := head.index + 1
		if next < len(streams[head.stream]) {
			heap.Push(&h, streamHead{cand: streams[head.stream][next], stream: head.stream, index: next})
		}
	}

	leftover := h.Len() > 0
	return merged, leftover
}
