package movegen

import (
	"github.com/domino14/hazards/move"
)

// PlayRecorderFunc receives every legal, scored candidate.
type PlayRecorderFunc func(gen *Generator, m *move.Move)

func NullPlayRecorder(gen *Generator, m *move.Move) {}

// AllPlaysRecorder keeps every candidate, in the order found.
func AllPlaysRecorder(gen *Generator, m *move.Move) {
	gen.plays = append(gen.plays, m)
}

// TopPlayOnlyRecorder keeps only the best candidate seen so far.
func TopPlayOnlyRecorder(gen *Generator, m *move.Move) {
	if len(gen.plays) == 0 {
		gen.plays = append(gen.plays, m)
		return
	}
	if IsBetter(m, gen.plays[0]) {
		gen.plays[0] = m
	}
}

// IsBetter ranks by score, then by the longest word formed.
func IsBetter(candidate, current *move.Move) bool {
	if current == nil {
		return true
	}
	if candidate.Score != current.Score {
		return candidate.Score > current.Score
	}
	return candidate.MaxWordLength > current.MaxWordLength
}
