package crawler

// Stats summarizes one crawl.
type Stats struct {
	// Outcomes counts every resolve, including re-resolves of visited files.
	Outcomes       map[Status]int
	FilesExtracted int
	Edges          int
	BytesRead      int64
}

func newStats() Stats {
	return Stats{Outcomes: make(map[Status]int)}
}

func (s *Stats) record(o Outcome) {
	s.Outcomes[o.Status]++
	if o.Status == StatusFound {
		s.BytesRead += int64(len(o.Content))
	}
}
