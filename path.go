package blockfs

import "strings"

// splitPath validates and breaks an absolute path into its non-empty
// components, applying the naming and depth rules every operation shares:
// the path must start with "/", no component may be empty, ".", or "..",
// no component may exceed DirNameMax-1 bytes, and no path may resolve to
// more than DirDepthLimit components.
func splitPath(path string) ([]string, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, ErrInvalidPath.WithMessage(path)
	}

	raw := strings.Split(path, "/")
	var parts []string
	for _, p := range raw {
		if p == "" {
			continue
		}
		if p == "." || p == ".." {
			return nil, ErrInvalidPath.WithMessage(path)
		}
		if len(p) > DirNameMax-1 {
			return nil, ErrNameTooLong.WithMessage(p)
		}
		parts = append(parts, p)
	}

	if len(parts) > DirDepthLimit {
		return nil, ErrTooDeep.WithMessage(path)
	}
	return parts, nil
}

// resolved describes the outcome of walking a path to its final component:
// the inode number/contents of the containing directory, the final
// component's name, and -- if it already exists -- its inode number and
// contents.
type resolved struct {
	parentIdx  uint32
	parent     Inode
	name       string
	exists     bool
	inodeIdx   uint32
	inode      Inode
}

// resolve walks path from the root, descending through existing
// directories. If createParents is true, missing intermediate directories
// are created as the walk proceeds; otherwise a missing intermediate
// component fails with ErrNotFound.
func (fs *FileSystem) resolve(path string, createParents bool) (resolved, error) {
	parts, err := splitPath(path)
	if err != nil {
		return resolved{}, err
	}
	if len(parts) == 0 {
		return resolved{}, ErrInvalidPath.WithMessage(path)
	}

	curIdx := uint32(rootInodeNumber)
	cur, err := fs.readInode(curIdx)
	if err != nil {
		return resolved{}, err
	}

	for _, name := range parts[:len(parts)-1] {
		entry, _, _, found, err := fs.lookupInDirectory(cur, name)
		if err != nil {
			return resolved{}, err
		}
		if !found {
			if !createParents {
				return resolved{}, ErrNotFound.WithMessage(name)
			}
			newIdx, newIno, err := fs.createChild(curIdx, &cur, name, true)
			if err != nil {
				return resolved{}, err
			}
			curIdx, cur = newIdx, newIno
			continue
		}
		if !entry.isFree() {
			child, err := fs.readInode(entry.InodeNumber)
			if err != nil {
				return resolved{}, err
			}
			if !child.IsDirectory {
				return resolved{}, ErrNotADirectory.WithMessage(name)
			}
			curIdx, cur = entry.InodeNumber, child
		}
	}

	last := parts[len(parts)-1]
	entry, _, _, found, err := fs.lookupInDirectory(cur, last)
	if err != nil {
		return resolved{}, err
	}
	if !found {
		return resolved{parentIdx: curIdx, parent: cur, name: last}, nil
	}

	child, err := fs.readInode(entry.InodeNumber)
	if err != nil {
		return resolved{}, err
	}
	return resolved{
		parentIdx: curIdx,
		parent:    cur,
		name:      last,
		exists:    true,
		inodeIdx:  entry.InodeNumber,
		inode:     child,
	}, nil
}

// createChild allocates a new inode for name inside the directory
// dirIdx/dirIno and links it in, returning the new inode's index and
// contents. Used both by Create and by resolve's automatic
// parent-directory creation.
func (fs *FileSystem) createChild(dirIdx uint32, dirIno *Inode, name string, isDirectory bool) (uint32, Inode, error) {
	childIdx, err := fs.allocateInode()
	if err != nil {
		return 0, Inode{}, err
	}

	child := Inode{IsDirectory: isDirectory}
	if isDirectory {
		block, err := fs.allocateBlock()
		if err != nil {
			return 0, Inode{}, err
		}
		var empty directoryBlock
		if err := fs.writeBlock(block, empty.encode()); err != nil {
			return 0, Inode{}, err
		}
		child.Direct[0] = block
		child.Size = BlockSize
	}

	if err := fs.writeInode(childIdx, child); err != nil {
		return 0, Inode{}, err
	}
	if err := fs.insertIntoDirectory(dirIdx, dirIno, name, childIdx); err != nil {
		return 0, Inode{}, err
	}
	return childIdx, child, nil
}
