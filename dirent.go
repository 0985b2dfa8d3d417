package blockfs

import (
	"bytes"
	"encoding/binary"

	"github.com/noxer/bytewriter"
)

// dirEntry is a single 32-byte directory entry: an inode number and a
// NUL-terminated, zero-padded name. An entry is free iff InodeNumber == 0.
type dirEntry struct {
	InodeNumber uint32
	Name        string
}

func (e dirEntry) isFree() bool {
	return e.InodeNumber == 0
}

// encode serializes a directory entry into a fresh DirEntrySize-byte buffer
// using bytewriter to assemble the fixed-width, zero-padded name field.
func (e dirEntry) encode() []byte {
	buf := make([]byte, DirEntrySize)
	binary.LittleEndian.PutUint32(buf[0:4], e.InodeNumber)

	nameBytes := []byte(e.Name)
	if len(nameBytes) > DirNameMax-1 {
		nameBytes = nameBytes[:DirNameMax-1]
	}
	w := bytewriter.New(buf[4:DirEntrySize])
	w.Write(nameBytes)
	// Remaining bytes in buf[4+len(nameBytes):32] are already zero from
	// make([]byte, ...), giving the NUL-terminated, zero-padded name field.
	return buf
}

// decodeDirEntry reads a DirEntrySize-byte buffer into a dirEntry.
func decodeDirEntry(buf []byte) dirEntry {
	inodeNumber := binary.LittleEndian.Uint32(buf[0:4])
	nameField := buf[4:DirEntrySize]
	nullAt := bytes.IndexByte(nameField, 0)
	if nullAt < 0 {
		nullAt = len(nameField)
	}
	return dirEntry{
		InodeNumber: inodeNumber,
		Name:        string(nameField[:nullAt]),
	}
}
