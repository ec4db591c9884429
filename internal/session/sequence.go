package session

// Sequence hands out transcript entry ids. The first id is 1 and ids are
// never reused within a session, so 0 can mean "none".
type Sequence struct {
	last uint64
}

// Next returns the next id.
func (s *Sequence) Next() uint64 {
	s.last++
	return s.last
}
