package availability

import (
	"iter"
	"sort"
)

// Classify scores each candidate slot against the canonical busy set and
// partitions the results. A slot nobody conflicts with is free; a slot some
// but not all participants conflict with is partial and retains the
// conflicting participants and intervals; a slot every participant conflicts
// with is discarded.
func Classify(candidates iter.Seq[Slot], busy []BusyInterval, numParticipants int) (free, partial []Slot) {
	for slot := range candidates {
		var conflicting []BusyInterval
		seen := map[string]bool{}
		for _, iv := range busy {
			if overlaps(slot.Start, slot.End, iv.Start, iv.End) {
				conflicting = append(conflicting, iv)
				seen[NormalizeParticipant(iv.Participant)] = true
			}
		}

		switch count := len(seen); {
		case count == 0:
			free = append(free, slot)
		case count < numParticipants:
			participants := make([]string, 0, count)
			for p := range seen {
				participants = append(participants, p)
			}
			sort.Strings(participants)
			slot.ConflictCount = count
			slot.ConflictingParticipants = participants
			slot.ConflictingIntervals = conflicting
			partial = append(partial, slot)
		}
		// count >= numParticipants: fully blocked, dropped.
	}
	return free, partial
}

// RankPartial orders partial slots for presentation: fewest conflicting
// participants first, earlier start first. Further ties keep generation
// order.
func RankPartial(partial []Slot) {
	sort.SliceStable(partial, func(i, j int) bool {
		if partial[i].ConflictCount != partial[j].ConflictCount {
			return partial[i].ConflictCount < partial[j].ConflictCount
		}
		return partial[i].Start.Before(partial[j].Start)
	})
}
