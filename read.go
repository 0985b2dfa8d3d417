package blockfs

// Read copies up to count bytes starting at offset from the file at path
// into buf, returning the number of bytes actually copied. A hole (a logical
// block below the file size that was never written) reads as zero-valued
// bytes, which count toward the result; reading at or past end of file
// copies nothing and returns 0.
func (fs *FileSystem) Read(path string, buf []byte, count int, offset int64) (int, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
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
	if offset >= int64(ino.Size) {
		return 0, nil
	}
	remaining := int64(ino.Size) - offset
	if int64(count) > remaining {
		count = int(remaining)
	}
	if count > len(buf) {
		count = len(buf)
	}

	total := 0
	for total < count {
		abs := offset + int64(total)
		logical := uint32(abs / BlockSize)
		blockOff := int(abs % BlockSize)

		physical, err := fs.resolvePhysicalBlock(ino, logical)
		if err != nil {
			return total, err
		}

		n := BlockSize - blockOff
		if n > count-total {
			n = count - total
		}

		if physical == 0 {
			for i := 0; i < n; i++ {
				buf[total+i] = 0
			}
		} else {
			block, err := fs.readBlock(physical)
			if err != nil {
				return total, err
			}
			copy(buf[total:total+n], block[blockOff:blockOff+n])
		}
		total += n
	}
	return total, nil
}
