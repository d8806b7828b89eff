package planner

// Config carries the two text-predicate IRIs the embedding application
// uses to mark text triples, supplied as constants by that application.
type Config struct {
	InContextRelation  string
	HasContextRelation string
}

func (c Config) isTextPredicate(predicate string) bool {
	return predicate == c.InContextRelation || predicate == c.HasContextRelation
}
