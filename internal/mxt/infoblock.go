// internal/mxt/infoblock.go
package mxt

import (
	"errors"
	"fmt"

	"github.com/tamzrod/touchdiag/internal/regbus"
)

var (
	// ErrObjectNotFound is returned when the object table has no entry
	// for a requested type or instance.
	ErrObjectNotFound = errors.New("mxt: object not found")

	// ErrChecksum is returned when the information block CRC does not
	// match the stored value.
	ErrChecksum = errors.New("mxt: information block checksum mismatch")
)

// ID is the 7-byte identification header of the information block.
type ID struct {
	Family     uint8
	Variant    uint8
	Version    uint8
	Build      uint8
	MatrixX    uint8
	MatrixY    uint8
	NumObjects uint8
}

// Object is one object-table entry.
type Object struct {
	Type      uint8
	Start     uint16
	Size      int // register footprint in bytes
	Instances int
	ReportIDs uint8
}

// Info is the parsed information block.
type Info struct {
	ID      ID
	Objects []Object
}

// ReadInfo reads and verifies the information block.
//
// Layout: ID header, NumObjects six-byte table entries, then a 24-bit
// checksum stored LSB first.
func ReadInfo(bus regbus.Bus) (*Info, error) {
	hdr, err := bus.Read(InfoBlockStart, IDBlockSize)
	if err != nil {
		return nil, fmt.Errorf("mxt: read id header: %w", err)
	}

	info := &Info{
		ID: ID{
			Family:     hdr[0],
			Variant:    hdr[1],
			Version:    hdr[2],
			Build:      hdr[3],
			MatrixX:    hdr[4],
			MatrixY:    hdr[5],
			NumObjects: hdr[6],
		},
	}

	tableLen := int(info.ID.NumObjects) * ObjectEntrySize
	table, err := bus.Read(InfoBlockStart+IDBlockSize, tableLen)
	if err != nil {
		return nil, fmt.Errorf("mxt: read object table: %w", err)
	}

	for i := 0; i < tableLen; i += ObjectEntrySize {
		e := table[i : i+ObjectEntrySize]
		info.Objects = append(info.Objects, Object{
			Type:      e[0],
			Start:     uint16(e[1]) | uint16(e[2])<<8,
			Size:      int(e[3]) + 1,
			Instances: int(e[4]) + 1,
			ReportIDs: e[5],
		})
	}

	stored, err := bus.Read(InfoBlockStart+uint16(IDBlockSize+tableLen), ChecksumSize)
	if err != nil {
		return nil, fmt.Errorf("mxt: read checksum: %w", err)
	}
	want := uint32(stored[0]) | uint32(stored[1])<<8 | uint32(stored[2])<<16

	blob := make([]byte, 0, IDBlockSize+tableLen)
	blob = append(blob, hdr...)
	blob = append(blob, table...)
	if got := Checksum(blob); got != want {
		return nil, fmt.Errorf("%w: got 0x%06x want 0x%06x", ErrChecksum, got, want)
	}

	return info, nil
}

// ObjectAddress returns the start address of the given object instance.
func (i *Info) ObjectAddress(typ uint8, instance int) (uint16, error) {
	for _, o := range i.Objects {
		if o.Type != typ {
			continue
		}
		if instance < 0 || instance >= o.Instances {
			return 0, fmt.Errorf("%w: type %d instance %d", ErrObjectNotFound, typ, instance)
		}
		return o.Start + uint16(instance*o.Size), nil
	}
	return 0, fmt.Errorf("%w: type %d", ErrObjectNotFound, typ)
}

// ObjectSize returns the register footprint of the given object type.
func (i *Info) ObjectSize(typ uint8) (int, error) {
	for _, o := range i.Objects {
		if o.Type == typ {
			return o.Size, nil
		}
	}
	return 0, fmt.Errorf("%w: type %d", ErrObjectNotFound, typ)
}

// Checksum computes the 24-bit CRC over the ID header and object table.
// The chip folds the bytes in little-endian pairs; an odd trailing byte
// is paired with zero.
func Checksum(p []byte) uint32 {
	const poly = uint32(0x80001B)

	var crc uint32
	for i := 0; i+1 < len(p); i += 2 {
		word := uint32(p[i]) | uint32(p[i+1])<<8
		crc = (crc << 1) ^ word
		if crc&0x1000000 != 0 {
			crc ^= poly
		}
	}
	if len(p)%2 != 0 {
		crc = (crc << 1) ^ uint32(p[len(p)-1])
		if crc&0x1000000 != 0 {
			crc ^= poly
		}
	}
	return crc & 0x00FFFFFF
}
