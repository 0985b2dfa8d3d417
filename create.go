package blockfs

// Create makes a new file or directory at path, creating any missing
// intermediate directories along the way. It fails with ErrAlreadyExists if
// something already exists at path.
func (fs *FileSystem) Create(path string, isDirectory bool) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	r, err := fs.resolve(path, true)
	if err != nil {
		return err
	}
	if r.exists {
		return ErrAlreadyExists.WithMessage(path)
	}

	parent := r.parent
	_, _, err = fs.createChild(r.parentIdx, &parent, r.name, isDirectory)
	return err
}
