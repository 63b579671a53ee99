package repository

import "context"

// GenerationCache stores generated task-title lists keyed by (subject, topic)
// so repeated generation requests can skip the external text-generation call.
// A cache is best-effort: misses and errors both mean "generate again".
type GenerationCache interface {
	Get(ctx context.Context, subjectID, topic string) ([]string, bool, error)
	Put(ctx context.Context, subjectID, topic string, titles []string) error
}
