package ir

import "fmt"

// SoundTable is a fixed mapping of slot names to string references. The
// slot set is established at construction; patching an unknown slot fails.
type SoundTable struct {
	Names []string
	refs  map[string]int32
}

func NewSoundTable(names ...string) *SoundTable {
	s := &SoundTable{Names: names, refs: make(map[string]int32, len(names))}
	for _, n := range names {
		s.refs[n] = -1
	}
	return s
}

func (s *SoundTable) Set(slot string, v int32) error {
	if _, ok := s.refs[slot]; !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchSlot, slot)
	}
	s.refs[slot] = v
	return nil
}

func (s *SoundTable) Get(slot string) (int32, bool) {
	v, ok := s.refs[slot]
	return v, ok
}
