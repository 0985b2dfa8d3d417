package blockfs

import (
	"fmt"
	"io"
)

// List writes one "<name> <size>\n" line per entry of the directory at
// path to w, in on-disk slot order.
func (fs *FileSystem) List(path string, w io.Writer) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	parts, err := splitPath(path)
	if err != nil {
		return err
	}
	var dir Inode
	if len(parts) == 0 {
		// "/" names the root directory itself, which resolve does not return.
		if dir, err = fs.readInode(rootInodeNumber); err != nil {
			return err
		}
	} else {
		r, err := fs.resolve(path, false)
		if err != nil {
			return err
		}
		if !r.exists {
			return ErrNotFound.WithMessage(path)
		}
		if !r.inode.IsDirectory {
			return ErrNotADirectory.WithMessage(path)
		}
		dir = r.inode
	}

	entries, err := fs.listDirectory(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		child, err := fs.readInode(e.InodeNumber)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s %d\n", e.Name, child.Size); err != nil {
			return err
		}
	}
	return nil
}
