package blockfs

// directoryBlock is the decoded form of one BlockSize-byte directory data
// block: a fixed array of DirEntriesPerBlock entries, free slots marked by
// InodeNumber == 0.
type directoryBlock struct {
	entries [DirEntriesPerBlock]dirEntry
}

func decodeDirectoryBlock(buf []byte) directoryBlock {
	var db directoryBlock
	for i := 0; i < DirEntriesPerBlock; i++ {
		off := i * DirEntrySize
		db.entries[i] = decodeDirEntry(buf[off : off+DirEntrySize])
	}
	return db
}

func (db directoryBlock) encode() []byte {
	buf := make([]byte, BlockSize)
	for i, e := range db.entries {
		off := i * DirEntrySize
		copy(buf[off:off+DirEntrySize], e.encode())
	}
	return buf
}

// lookup returns the entry named name in this block, if present.
func (db directoryBlock) lookup(name string) (dirEntry, bool) {
	for _, e := range db.entries {
		if !e.isFree() && e.Name == name {
			return e, true
		}
	}
	return dirEntry{}, false
}

// firstFreeSlot returns the index of the first free entry in this block, if
// any -- used both for insertion and to decide whether a new directory block
// must be allocated.
func (db directoryBlock) firstFreeSlot() (int, bool) {
	for i, e := range db.entries {
		if e.isFree() {
			return i, true
		}
	}
	return 0, false
}

// isEmpty reports whether every entry in this block is free.
func (db directoryBlock) isEmpty() bool {
	for _, e := range db.entries {
		if !e.isFree() {
			return false
		}
	}
	return true
}

// insert places e into the given slot, returning a copy with the slot
// filled. Callers must check firstFreeSlot first to know a block has room.
func (db directoryBlock) insert(slot int, e dirEntry) directoryBlock {
	db.entries[slot] = e
	return db
}

// remove clears the entry named name, if present, returning whether it was
// found and removed.
func (db directoryBlock) remove(name string) (directoryBlock, bool) {
	for i, e := range db.entries {
		if !e.isFree() && e.Name == name {
			db.entries[i] = dirEntry{}
			return db, true
		}
	}
	return db, false
}
