package domain

// SequenceCounter is the persisted state of the piece-numbering scheme for
// one (journal code, fiscal year) pair. The counter key matches the piece
// identity key, so a number is unique within its journal and year. The row
// is only ever mutated by an atomic increment-and-read and is never
// deleted, so committed numbers strictly increase and are never reused. A
// rolled-back draw is undone with its transaction and the number is issued
// again to a later caller. Readers must tolerate gaps regardless.
type SequenceCounter struct {
	JournalCode      string `json:"journalCode"` // e.g. "VT", "OD"
	FiscalYear       int    `json:"fiscalYear"`
	LastIssuedNumber int64  `json:"lastIssuedNumber"`
}
