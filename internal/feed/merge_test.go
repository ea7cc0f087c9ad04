package feed

import (
	"testing"
	"time"
)

var mergeBase = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(sec int) time.Time {
	return mergeBase.Add(time.Duration(sec) * time.Second)
}

func cand(id string, sec int) candidate {
	return candidate{id: id, createdAt: at(sec)}
}

func ids(cands []candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.id
	}
	return out
}

func assertIDs(t *testing.T, got []candidate, want []string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestMergeByTime_Interleaves(t *testing.T) {
	posts := []candidate{cand("p1", 50), cand("p2", 30), cand("p3", 10)}
	reels := []candidate{cand("r1", 40), cand("r2", 20)}

	merged, leftover := mergeByTime(posts, reels, 10)

	assertIDs(t, merged, []string{"p1", "r1", "p2", "r2", "p3"})
	if leftover {
		t.Error("leftover = true, want false")
	}
}

func TestMergeByTime_CapsAtLimit(t *testing.T) {
	posts := []candidate{cand("p1", 50), cand("p2", 30)}
	reels := []candidate{cand("r1", 40), cand("r2", 20)}

	merged, leftover := mergeByTime(posts, reels, 3)

	assertIDs(t, merged, []string{"p1", "r1", "p2"})
	if !leftover {
		t.Error("leftover = false, want true")
	}
}

func TestMergeByTime_BoundsEachPointer(t *testing.T) {
	// Each input is independently truncated to limit before merging, so a
	// long head on one side cannot starve the cap accounting
	posts := []candidate{cand("p1", 90), cand("p2", 80), cand("p3", 70), cand("p4", 60)}
	reels := []candidate{cand("r1", 85)}

	merged, leftover := mergeByTime(posts, reels, 2)

	assertIDs(t, merged, []string{"p1", "r1"})
	if !leftover {
		t.Error("leftover = false, want true")
	}
}

func TestMergeByTime_TruncationCountsAsLeftover(t *testing.T) {
	// A stream longer than the page is cut to the page size before the
	// merge loop; the cut candidates still mean there is a next page, even
	// when both pointers run to the end of their bounded inputs
	posts := []candidate{cand("p1", 30), cand("p2", 20), cand("p3", 10)}

	merged, leftover := mergeByTime(posts, nil, 2)

	assertIDs(t, merged, []string{"p1", "p2"})
	if !leftover {
		t.Error("leftover = false, want true: p3 was cut by the stream bound")
	}
}

func TestMergeByTime_TieBreakIsDeterministic(t *testing.T) {
	a := []candidate{cand("b", 10)}
	b := []candidate{cand("c", 10), cand("a", 10)}

	// Equal timestamps order by ID descending, regardless of source
	merged, _ := mergeByTime(a, b, 10)
	assertIDs(t, merged, []string{"c", "b", "a"})

	// Swapping the sources must not change the result
	merged2, _ := mergeByTime(b, a, 10)
	assertIDs(t, merged2, []string{"c", "b", "a"})
}

func TestMergeByTime_DeduplicatesAcrossSources(t *testing.T) {
	a := []candidate{cand("x", 30), cand("y", 20)}
	b := []candidate{cand("x", 30), cand("z", 10)}

	merged, _ := mergeByTime(a, b, 10)
	assertIDs(t, merged, []string{"x", "y", "z"})
}

func TestMergeByTime_EmptySides(t *testing.T) {
	posts := []candidate{cand("p1", 5)}

	merged, leftover := mergeByTime(posts, nil, 10)
	assertIDs(t, merged, []string{"p1"})
	if leftover {
		t.Error("leftover = true, want false")
	}

	merged, _ = mergeByTime(nil, nil, 10)
	if len(merged) != 0 {
		t.Errorf("merging nothing produced %v", ids(merged))
	}
}

func TestUnionCandidates_FirstOccurrenceWins(t *testing.T) {
	authored := []candidate{cand("x", 30), cand("y", 20)}
	tagged := []candidate{cand("x", 30), cand("z", 40)}

	union := unionCandidates(authored, tagged)

	assertIDs(t, union, []string{"z", "x", "y"})
}

func TestMergeMany_ThreeStreams(t *testing.T) {
	s1 := []candidate{cand("a1", 90), cand("a2", 40)}
	s2 := []candidate{cand("b1", 80), cand("b2", 50)}
	s3 := []candidate{cand("c1", 70), cand("c2", 60)}

	merged, leftover := mergeMany([][]candidate{s1, s2, s3}, 10)

	assertIDs(t, merged, []string{"a1", "b1", "c1", "c2", "b2", "a2"})
	if leftover {
		t.Error("leftover = true, want false")
	}
}

func TestMergeMany_CapAndDedupe(t *testing.T) {
	s1 := []candidate{cand("a", 90), cand("dup", 60)}
	s2 := []candidate{cand("dup", 60), cand("b", 50)}

	merged, leftover := mergeMany([][]candidate{s1, s2}, 3)

	assertIDs(t, merged, []string{"a", "dup", "b"})
	if leftover {
		t.Error("leftover = true, want false")
	}

	merged, leftover = mergeMany([][]candidate{s1, s2}, 2)
	assertIDs(t, merged, []string{"a", "dup"})
	if !leftover {
		t.Error("leftover = false, want true")
	}
}
