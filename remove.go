package blockfs

import (
	"github.com/hashicorp/go-multierror"
)

// Remove deletes the file or directory at path. Directories are removed
// recursively; per-entry failures during a recursive removal are collected
// and returned together rather than aborting on the first one.
func (fs *FileSystem) Remove(path string) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	r, err := fs.resolve(path, false)
	if err != nil {
		return err
	}
	if !r.exists {
		return ErrNotFound.WithMessage(path)
	}

	if err := fs.removeTree(r.inodeIdx, r.inode); err != nil {
		return err
	}
	return fs.removeFromDirectory(r.parent, r.name)
}

// removeTree frees every block and inode reachable from idx/ino. For a
// directory, each child is removed first; a multierror accumulates
// failures across children so one bad entry doesn't stop the rest from
// being cleaned up.
func (fs *FileSystem) removeTree(idx uint32, ino Inode) error {
	if ino.IsDirectory {
		entries, err := fs.listDirectory(ino)
		if err != nil {
			return err
		}

		var result *multierror.Error
		for _, e := range entries {
			child, err := fs.readInode(e.InodeNumber)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			if err := fs.removeTree(e.InodeNumber, child); err != nil {
				result = multierror.Append(result, err)
			}
		}
		if result != nil {
			return result.ErrorOrNil()
		}
	}

	if err := fs.freeInodeBlocks(ino); err != nil {
		return err
	}
	return fs.freeInode(idx)
}

// freeInodeBlocks releases every data block (and the single-indirect block,
// if any) owned by ino.
func (fs *FileSystem) freeInodeBlocks(ino Inode) error {
	for _, ptr := range ino.Direct {
		if ptr != 0 {
			if err := fs.freeBlock(ptr); err != nil {
				return err
			}
		}
	}
	if ino.SingleIndirect == 0 {
		return nil
	}
	buf, err := fs.readBlock(ino.SingleIndirect)
	if err != nil {
		return err
	}
	for _, ptr := range decodeIndirectBlock(buf) {
		if ptr != 0 {
			if err := fs.freeBlock(ptr); err != nil {
				return err
			}
		}
	}
	return fs.freeBlock(ino.SingleIndirect)
}
