package availability

import (
	"testing"
	"time"
)

func TestClassifyEndToEndFree(t *testing.T) {
	// Two participants, one-day window, no busy intervals: every slot is
	// free and the first one starts at 11:00.
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC) // Monday
	s := DefaultSettings()
	win := SearchWindow{
		TimeMin: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		TimeMax: time.Date(2026, 9, 7, 23, 59, 59, 0, time.UTC),
	}

	free, partial := Classify(Candidates(win, s, now), nil, 2)

	if len(partial) != 0 {
		t.Errorf("expected no partial slots, got %d", len(partial))
	}
	if len(free) == 0 {
		t.Fatal("expected free slots")
	}
	first := free[0]
	if !first.Start.Equal(time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("first free slot starts %v, expected 11:00", first.Start)
	}
	if first.ConflictCount != 0 {
		t.Errorf("free slot has conflict count %d", first.ConflictCount)
	}
}

func TestClassifyEndToEndPartial(t *testing.T) {
	// Participant A busy 13:00-14:00 "Lunch": the two covered slots are
	// partial with A as the sole conflicting participant, everything else
	// stays free.
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	s := DefaultSettings()
	win := SearchWindow{
		TimeMin: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		TimeMax: time.Date(2026, 9, 7, 23, 59, 59, 0, time.UTC),
	}
	busy := []BusyInterval{
		{
			Participant: "a@example.com",
			Start:       time.Date(2026, 9, 7, 13, 0, 0, 0, time.UTC),
			End:         time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
			Title:       "Lunch",
			Origin:      OriginPrimary,
		},
	}

	free, partial := Classify(Candidates(win, s, now), busy, 2)

	if len(partial) != 2 {
		t.Fatalf("expected 2 partial slots, got %d", len(partial))
	}
	for _, slot := range partial {
		if slot.ConflictCount != 1 {
			t.Errorf("partial slot %v has conflict count %d, expected 1", slot.Start, slot.ConflictCount)
		}
		if len(slot.ConflictingParticipants) != 1 || slot.ConflictingParticipants[0] != "a@example.com" {
			t.Errorf("partial slot %v conflicts with %v, expected a@example.com", slot.Start, slot.ConflictingParticipants)
		}
		if len(slot.ConflictingIntervals) != 1 || slot.ConflictingIntervals[0].Title != "Lunch" {
			t.Errorf("partial slot %v should retain the Lunch interval", slot.Start)
		}
	}

	for _, slot := range free {
		if overlaps(slot.Start, slot.End, busy[0].Start, busy[0].End) {
			t.Errorf("free slot %v overlaps the busy interval", slot.Start)
		}
	}
}

func TestClassifyDiscardsFullyBlocked(t *testing.T) {
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	s := DefaultSettings()
	win := SearchWindow{
		TimeMin: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		TimeMax: time.Date(2026, 9, 7, 23, 59, 59, 0, time.UTC),
	}
	blocked := Interval{
		Start: time.Date(2026, 9, 7, 13, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 7, 13, 30, 0, 0, time.UTC),
	}
	busy := []BusyInterval{
		{Participant: "a@example.com", Start: blocked.Start, End: blocked.End},
		{Participant: "b@example.com", Start: blocked.Start, End: blocked.End},
	}

	free, partial := Classify(Candidates(win, s, now), busy, 2)

	for _, slot := range append(free, partial...) {
		if slot.Start.Equal(blocked.Start) {
			t.Errorf("fully blocked slot %v was emitted", slot.Start)
		}
	}
}

func TestClassifyCountsDistinctParticipants(t *testing.T) {
	// Two intervals for the same participant in one slot count once, and
	// case differences in the identifier do not double-count.
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	s := DefaultSettings()
	win := SearchWindow{
		TimeMin: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		TimeMax: time.Date(2026, 9, 7, 23, 59, 59, 0, time.UTC),
	}
	busy := []BusyInterval{
		{Participant: "a@example.com", Start: time.Date(2026, 9, 7, 13, 0, 0, 0, time.UTC), End: time.Date(2026, 9, 7, 13, 15, 0, 0, time.UTC)},
		{Participant: "A@Example.com", Start: time.Date(2026, 9, 7, 13, 15, 0, 0, time.UTC), End: time.Date(2026, 9, 7, 13, 30, 0, 0, time.UTC)},
	}

	_, partial := Classify(Candidates(win, s, now), busy, 2)

	if len(partial) != 1 {
		t.Fatalf("expected 1 partial slot, got %d", len(partial))
	}
	if partial[0].ConflictCount != 1 {
		t.Errorf("expected conflict count 1 for a single participant, got %d", partial[0].ConflictCount)
	}
	if len(partial[0].ConflictingIntervals) != 2 {
		t.Errorf("expected both intervals retained, got %d", len(partial[0].ConflictingIntervals))
	}
}

func TestClassifyInvariants(t *testing.T) {
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	s := DefaultSettings()
	win := WindowFrom(now, 3)
	busy := []BusyInterval{
		{Participant: "a@example.com", Start: time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC), End: time.Date(2026, 9, 7, 15, 0, 0, 0, time.UTC)},
		{Participant: "b@example.com", Start: time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC), End: time.Date(2026, 9, 8, 13, 0, 0, 0, time.UTC)},
	}
	numParticipants := 3

	free, partial := Classify(Candidates(win, s, now), busy, numParticipants)

	for _, slot := range append(append([]Slot{}, free...), partial...) {
		if slot.End.Sub(slot.Start) != s.MeetingDuration {
			t.Errorf("slot %v has duration %s", slot.Start, slot.End.Sub(slot.Start))
		}
		if slot.ConflictCount < 0 || slot.ConflictCount >= numParticipants {
			t.Errorf("slot %v has conflict count %d outside [0,%d)", slot.Start, slot.ConflictCount, numParticipants)
		}
	}
}

func TestRankPartial(t *testing.T) {
	t1 := time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	t3 := time.Date(2026, 9, 8, 11, 0, 0, 0, time.UTC)

	partial := []Slot{
		{Start: t3, ConflictCount: 2},
		{Start: t2, ConflictCount: 1},
		{Start: t1, ConflictCount: 2},
		{Start: t1, ConflictCount: 1},
	}

	RankPartial(partial)

	for i := 1; i < len(partial); i++ {
		a, b := partial[i-1], partial[i]
		if a.ConflictCount > b.ConflictCount {
			t.Errorf("slots %d,%d out of conflict order: %d > %d", i-1, i, a.ConflictCount, b.ConflictCount)
		}
		if a.ConflictCount == b.ConflictCount && a.Start.After(b.Start) {
			t.Errorf("slots %d,%d out of start order within conflict count %d", i-1, i, a.ConflictCount)
		}
	}
}
