package ihex

// encoderState tracks where the next byte lands.
type encoderState struct {
	bank uint16
	// offset reaches 1<<32 after the last byte of the address space
	offset uint64
}

// Encoder turns successive chunks of an image into records, emitting an
// extended address record whenever the data crosses into a new bank.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	state    encoderState
	records  []Record
	finished bool
}

// NewEncoder starts encoding an image that begins at base.
// The extended address record for the initial bank is emitted immediately.
//
// Example:
//
//	enc := ihex.NewEncoder(0x00010000)
//	_ = enc.Push([]byte{0x01, 0x02, 0x03})
//	seq, _ := enc.Finish()
func NewEncoder(base uint32) *Encoder {
	e := &Encoder{
		state: encoderState{
			bank:   uint16(base >> 16),
			offset: uint64(base),
		},
	}
	e.records = append(e.records, NewExtendedAddressRecord(e.state.bank))
	return e
}

// Offset returns the address of the next byte to be encoded.
func (e *Encoder) Offset() uint64 {
	return e.state.offset
}

// Push encodes the next chunk of the image.
//
// The chunk must not exceed MaxDataLength bytes. A chunk that straddles a
// bank boundary is split into two data records with an extended address
// record between them. A chunk that ends exactly on a boundary does not
// emit the bank change; the next non-empty chunk does.
func (e *Encoder) Push(chunk []byte) error {
	if e.finished {
		return ErrEncoderFinished
	}
	if len(chunk) == 0 {
		return nil
	}
	if len(chunk) > MaxDataLength {
		return &RecordTooLongError{Length: len(chunk)}
	}
	if e.state.offset+uint64(len(chunk)) > 1<<32 {
		return &AddressOverflowError{Offset: e.state.offset, Length: len(chunk)}
	}

	// Deferred bank change from a previous chunk that ended on a boundary
	if e.bankOf(e.state.offset) != e.state.bank {
		e.switchBank()
	}

	room := BankSize - int(e.state.offset&0xFFFF)
	n := min(len(chunk), room)

	if err := e.emitData(chunk[:n]); err != nil {
		return err
	}

	if n < len(chunk) {
		e.switchBank()
		if err := e.emitData(chunk[n:]); err != nil {
			return err
		}
	}

	return nil
}

// Finish appends the end of file record and returns the completed sequence.
// The encoder cannot be used afterwards.
func (e *Encoder) Finish() (*Sequence, error) {
	if e.finished {
		return nil, ErrEncoderFinished
	}
	e.finished = true

	records := append(e.records, NewEndOfFileRecord())
	e.records = nil
	return &Sequence{records: records}, nil
}

func (e *Encoder) bankOf(offset uint64) uint16 {
	return uint16(offset >> 16)
}

func (e *Encoder) switchBank() {
	e.state.bank = e.bankOf(e.state.offset)
	e.records = append(e.records, NewExtendedAddressRecord(e.state.bank))
}

func (e *Encoder) emitData(data []byte) error {
	rec, err := NewDataRecord(uint16(e.state.offset&0xFFFF), data)
	if err != nil {
		return err
	}
	e.records = append(e.records, rec)
	e.state.offset += uint64(len(data))
	return nil
}
