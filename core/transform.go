package core

// Transformer mutates a dataset in place before it becomes visible.
type Transformer interface {
	Transform(sessions []Session) error
}

// Chain applies transformers in order, stopping at the first error.
func Chain(sessions []Session, transformers ...Transformer) error {
	for _, tr := range transformers {
		if tr == nil {
			continue
		}
		if err := tr.Transform(sessions); err != nil {
			return err
		}
	}
	return nil
}

// CountRecords returns the total number of records across sessions.
func CountRecords(sessions []Session) int {
	n := 0
	for _, s := range sessions {
		n += len(s.Records)
	}
	return n
}
