package refine

import (
	"github.com/maastricht-university/labrefine/label"
	"github.com/maastricht-university/labrefine/phoneme"
)

type groupPair struct{ a, b phoneme.Group }

// compatible lists group pairs allowed to merge besides equal groups. Every
// pair is currently same-group, so it never widens eligibility.
// TODO: decide whether cross-group pairs (e.g. vowels/consonants) belong here.
var compatible = map[groupPair]bool{
	{phoneme.Vowels, phoneme.Vowels}:         true,
	{phoneme.Consonants, phoneme.Consonants}: true,
	{phoneme.Silence, phoneme.Silence}:       true,
	{phoneme.Sibilants, phoneme.Sibilants}:   true,
	{phoneme.Liquids, phoneme.Liquids}:       true,
	{phoneme.Nasals, phoneme.Nasals}:         true,
	{phoneme.Stops, phoneme.Stops}:           true,
	{phoneme.Fricatives, phoneme.Fricatives}: true,
	{phoneme.Special, phoneme.Special}:       true,
}

func compatibleGroups(a, b phoneme.Group) bool {
	if a == b {
		return true
	}
	return compatible[groupPair{a, b}] || compatible[groupPair{b, a}]
}

// ShouldMerge reports whether next may be folded into prev. Overlapping
// segments give a negative gap and pass the threshold.
func ShouldMerge(prev, next label.Segment, groupPrev, groupNext phoneme.Group, maxGapSeconds float64) bool {
	gap := label.TicksToSeconds(next.Start - prev.End)
	return gap <= maxGapSeconds && compatibleGroups(groupPrev, groupNext)
}
