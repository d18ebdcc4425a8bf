package transfer

import (
	"errors"
	"fmt"
)

// Phase is the position of a transaction in its life cycle
type Phase int

const (
	PhaseInitialisation Phase = iota // initialisation request sent or pending
	PhaseTransfer                    // segments are being exchanged
	PhaseReceipt                     // all segments present, receipt pending
	PhaseDone                        // transaction finished
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialisation:
		return "Initialisation"
	case PhaseTransfer:
		return "Transfer"
	case PhaseReceipt:
		return "Receipt"
	case PhaseDone:
		return "Done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

var (
	// ErrOutOfSequence is returned for a segment that is not the next one.
	ErrOutOfSequence = errors.New("segment out of sequence")
	// ErrInvalidTransition is returned when a phase change would go backwards
	// or skip segments.
	ErrInvalidTransition = errors.New("invalid phase transition")
)

// State tracks one segmented transaction
type State struct {
	transactionID []byte
	total         int
	segment       int
	phase         Phase
}

// NewState creates the state of a transaction with total segments
func NewState(total int) (*State, error) {
	if total < 1 {
		return nil, fmt.Errorf("segment count must be positive, got %d", total)
	}
	return &State{total: total, phase: PhaseInitialisation}, nil
}

// SetTransactionID records the transaction id assigned by the bank
func (s *State) SetTransactionID(id []byte) {
	s.transactionID = append([]byte(nil), id...)
}

// TransactionID returns the transaction id assigned by the bank
func (s *State) TransactionID() []byte { return s.transactionID }

// Total returns the number of segments
func (s *State) Total() int { return s.total }

// Segment returns the number of the last processed segment, 0 before the first
func (s *State) Segment() int { return s.segment }

// Phase returns the current phase
func (s *State) Phase() Phase { return s.phase }

// HasNext reports whether segments remain
func (s *State) HasNext() bool { return s.segment < s.total }

// IsLast reports whether the current segment is the last one
func (s *State) IsLast() bool { return s.segment == s.total }

// Next advances to the next segment and returns its number
func (s *State) Next() (int, error) {
	n := s.segment + 1
	if err := s.Apply(n); err != nil {
		return 0, err
	}
	return n, nil
}

// Apply records that segment n has been processed. n must be exactly the
// segment following the last processed one.
func (s *State) Apply(n int) error {
	if s.phase > PhaseTransfer {
		return fmt.Errorf("%w: segment %d in phase %s", ErrInvalidTransition, n, s.phase)
	}
	if n != s.segment+1 || n > s.total {
		return fmt.Errorf("%w: got %d, want %d of %d", ErrOutOfSequence, n, s.segment+1, s.total)
	}
	s.segment = n
	s.phase = PhaseTransfer
	return nil
}

// Receipt moves a completed transaction to the receipt phase
func (s *State) Receipt() error {
	if s.phase != PhaseTransfer || s.segment != s.total {
		return fmt.Errorf("%w: receipt after %d of %d segments in phase %s", ErrInvalidTransition, s.segment, s.total, s.phase)
	}
	s.phase = PhaseReceipt
	return nil
}

// Finish ends the transaction. All segments must have been processed.
func (s *State) Finish() error {
	if s.segment != s.total || s.phase == PhaseDone || s.phase == PhaseInitialisation {
		return fmt.Errorf("%w: finish after %d of %d segments in phase %s", ErrInvalidTransition, s.segment, s.total, s.phase)
	}
	s.phase = PhaseDone
	return nil
}
