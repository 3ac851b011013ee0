// Package domain contains pure, dependency-free value types for the
// question-level critic loop evaluation engine. Nothing in this package
// reaches out to an LLM, a filesystem, or a clock; every type here is a
// plain value that can be constructed, compared, and serialized without
// side effects.
package domain

// DifficultyLevel buckets a Question's rank into a coarse band used for
// report breakdowns.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Question is one analytical question elicited from the question
// generator for a single run. Questions are immutable once created; the
// generator is the only component that produces them, and it never
// revises a Question after returning it.
type Question struct {
	// ID uniquely identifies this question within its run.
	ID string `json:"id"`
	// Text is the natural-language question text.
	Text string `json:"text"`
	// DifficultyRank is this question's position in the 1..N ranked
	// ordering produced by the generator, ascending in difficulty.
	DifficultyRank int `json:"difficulty_rank"`
	// DifficultyLevel is the bucketed band derived from DifficultyRank.
	DifficultyLevel DifficultyLevel `json:"difficulty_level"`
	// Reasoning is the generator's stated justification for asking this
	// question of this dataset.
	Reasoning string `json:"reasoning"`
	// RelevantDataKeys names the dataset bundle keys the generator
	// believes are relevant to answering this question.
	RelevantDataKeys []string `json:"relevant_data_keys"`
}

// BucketDifficulty assigns a DifficultyLevel to a 1-indexed rank out of a
// total of n questions, splitting the ranked range into thirds: the first
// third is easy, the middle third is medium, the top third is hard.
func BucketDifficulty(rank, n int) DifficultyLevel {
	if n <= 0 {
		return DifficultyMedium
	}
	switch {
	case rank*3 <= n:
		return DifficultyEasy
	case rank*3 <= 2*n:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}
