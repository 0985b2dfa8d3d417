package blockfs

// directoryBlockNumbers returns the physical block numbers backing a
// directory's entries, in logical order. Directories are built from the
// same direct/indirect addressing as regular files and, per policy, never
// shrink: blocks are appended as entries are added but never freed by
// removal of individual entries.
func (fs *FileSystem) directoryBlockNumbers(ino Inode) ([]uint32, error) {
	var blocks []uint32
	for _, ptr := range ino.Direct {
		if ptr == 0 {
			return blocks, nil
		}
		blocks = append(blocks, ptr)
	}
	if ino.SingleIndirect == 0 {
		return blocks, nil
	}
	buf, err := fs.readBlock(ino.SingleIndirect)
	if err != nil {
		return nil, err
	}
	for _, ptr := range decodeIndirectBlock(buf) {
		if ptr == 0 {
			break
		}
		blocks = append(blocks, ptr)
	}
	return blocks, nil
}

// lookupInDirectory searches a directory's blocks for name, returning the
// matching entry plus the physical block and slot it lives in.
func (fs *FileSystem) lookupInDirectory(ino Inode, name string) (dirEntry, uint32, int, bool, error) {
	blocks, err := fs.directoryBlockNumbers(ino)
	if err != nil {
		return dirEntry{}, 0, 0, false, err
	}
	for _, blockNum := range blocks {
		buf, err := fs.readBlock(blockNum)
		if err != nil {
			return dirEntry{}, 0, 0, false, err
		}
		db := decodeDirectoryBlock(buf)
		for slot, e := range db.entries {
			if !e.isFree() && e.Name == name {
				return e, blockNum, slot, true, nil
			}
		}
	}
	return dirEntry{}, 0, 0, false, nil
}

// listDirectory returns every non-free entry across a directory's blocks.
func (fs *FileSystem) listDirectory(ino Inode) ([]dirEntry, error) {
	blocks, err := fs.directoryBlockNumbers(ino)
	if err != nil {
		return nil, err
	}
	var out []dirEntry
	for _, blockNum := range blocks {
		buf, err := fs.readBlock(blockNum)
		if err != nil {
			return nil, err
		}
		db := decodeDirectoryBlock(buf)
		for _, e := range db.entries {
			if !e.isFree() {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// insertIntoDirectory adds a (name -> inodeNumber) entry to the directory
// described by dirIdx/dirIno, reusing a free slot in an existing block if
// one exists, otherwise appending a new block. dirIno is updated and
// persisted in place when a new block is allocated.
func (fs *FileSystem) insertIntoDirectory(dirIdx uint32, dirIno *Inode, name string, inodeNumber uint32) error {
	blocks, err := fs.directoryBlockNumbers(*dirIno)
	if err != nil {
		return err
	}

	for _, blockNum := range blocks {
		buf, err := fs.readBlock(blockNum)
		if err != nil {
			return err
		}
		db := decodeDirectoryBlock(buf)
		if slot, ok := db.firstFreeSlot(); ok {
			db = db.insert(slot, dirEntry{InodeNumber: inodeNumber, Name: name})
			return fs.writeBlock(blockNum, db.encode())
		}
	}

	logical := uint32(len(blocks))
	physical, err := fs.ensurePhysicalBlock(dirIno, logical)
	if err != nil {
		return err
	}
	var db directoryBlock
	db = db.insert(0, dirEntry{InodeNumber: inodeNumber, Name: name})
	if err := fs.writeBlock(physical, db.encode()); err != nil {
		return err
	}
	dirIno.Size += BlockSize
	return fs.writeInode(dirIdx, *dirIno)
}

// removeFromDirectory clears the entry named name from one of the
// directory's blocks. The block itself is never freed, even if this leaves
// the block empty.
func (fs *FileSystem) removeFromDirectory(ino Inode, name string) error {
	_, blockNum, slot, found, err := fs.lookupInDirectory(ino, name)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound.WithMessage(name)
	}
	buf, err := fs.readBlock(blockNum)
	if err != nil {
		return err
	}
	db := decodeDirectoryBlock(buf)
	db.entries[slot] = dirEntry{}
	return fs.writeBlock(blockNum, db.encode())
}
