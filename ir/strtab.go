package ir

import "fmt"

// StringEntry is one localized string table entry.
type StringEntry struct {
	Text      string
	Voiceover string
}

// StringTable is the session's localized string table. Appends return the
// new entry's string reference.
type StringTable struct {
	Entries []StringEntry
}

func (s *StringTable) Append(text, voiceover string) int32 {
	s.Entries = append(s.Entries, StringEntry{Text: text, Voiceover: voiceover})
	return int32(len(s.Entries) - 1)
}

func (s *StringTable) Replace(ref int32, text, voiceover string) error {
	if ref < 0 || int(ref) >= len(s.Entries) {
		return fmt.Errorf("%w: string reference %d of %d", ErrOutOfBounds, ref, len(s.Entries))
	}
	s.Entries[ref] = StringEntry{Text: text, Voiceover: voiceover}
	return nil
}
