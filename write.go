package blockfs

// Write copies count bytes from buf into the file at path, starting at
// offset 0, or at the file's current size if append is true. It never
// truncates: bytes already on disk beyond the written range are left
// untouched. A write that fails partway (ErrOutOfSpace, ErrFileTooLarge) is
// not rolled back -- whatever was written before the failure stays written.
func (fs *FileSystem) Write(path string, buf []byte, count int, append bool) (int, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}
	if count > len(buf) {
		count = len(buf)
	}

	r, err := fs.resolve(path, false)
	if err != nil {
		return 0, err
	}
	if !r.exists {
		return 0, ErrNotFound.WithMessage(path)
	}
	if r.inode.IsDirectory {
		return 0, ErrIsADirectory.WithMessage(path)
	}

	ino := r.inode
	offset := int64(0)
	if append {
		offset = int64(ino.Size)
	}

	total := 0
	for total < count {
		abs := offset + int64(total)
		logical := uint32(abs / BlockSize)
		blockOff := int(abs % BlockSize)

		physical, err := fs.ensurePhysicalBlock(&ino, logical)
		if err != nil {
			fs.writeInode(r.inodeIdx, ino)
			return total, err
		}

		n := BlockSize - blockOff
		if n > count-total {
			n = count - total
		}

		block, err := fs.readBlock(physical)
		if err != nil {
			fs.writeInode(r.inodeIdx, ino)
			return total, err
		}
		copy(block[blockOff:blockOff+n], buf[total:total+n])
		if err := fs.writeBlock(physical, block); err != nil {
			fs.writeInode(r.inodeIdx, ino)
			return total, err
		}
		total += n

		if abs+int64(n) > int64(ino.Size) {
			ino.Size = uint64(abs + int64(n))
		}
	}

	if err := fs.writeInode(r.inodeIdx, ino); err != nil {
		return total, err
	}
	return total, nil
}
