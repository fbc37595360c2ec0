package replay

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/rionnag/unblocked/internal/core"
)

// FormatVersion is bumped on any change to the on-disk layout. Files with
// a different version are rejected rather than misread.
const FormatVersion uint32 = 1

// The on-disk layout, little-endian throughout:
//
//	version uint32
//	count   uint32
//	count times:
//	    tick uint64
//	    act  uint8

func encode(w io.Writer, moves []Move) error {
	if err := binary.Write(w, binary.LittleEndian, FormatVersion); err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(moves))); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	for _, m := range moves {
		if err := binary.Write(w, binary.LittleEndian, m.Tick); err != nil {
			return fmt.Errorf("write tick: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint8(m.Act)); err != nil {
			return fmt.Errorf("write action: %w", err)
		}
	}
	return nil
}

func decode(r io.Reader) ([]Move, error) {
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version %d (want %d)", version, FormatVersion)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}

	moves := make([]Move, 0, count)
	for i := uint32(0); i < count; i++ {
		var tick uint64
		var act uint8
		if err := binary.Read(r, binary.LittleEndian, &tick); err != nil {
			return nil, fmt.Errorf("read move %d: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &act); err != nil {
			return nil, fmt.Errorf("read move %d: %w", i, err)
		}
		moves = append(moves, Move{Tick: tick, Act: core.Action(act)})
	}
	return moves, nil
}
