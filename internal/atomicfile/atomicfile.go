// Package atomicfile writes a file through a temporary sibling that is
// renamed over the destination on Close. If anything fails before the
// rename, the destination is left untouched and the temporary is removed.
package atomicfile

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultMode is the permission of a file created where none existed.
const DefaultMode fs.FileMode = 0o644

var (
	// ErrCancelled is returned by calls after Cancel.
	ErrCancelled = errors.New("cancelled")

	_ io.WriteCloser  = &File{}
	_ io.StringWriter = &File{}
)

// File is an io.WriteCloser that only becomes visible at its destination
// path after a successful Close.
type File struct {
	dstPath string
	dir     string
	tmp     *os.File
	tmpPath string
	err     error
}

// New creates the temporary file next to path. The file gets the
// permissions of the destination it replaces, or DefaultMode when the
// destination does not exist yet.
func New(path string) (*File, error) {
	dir, name := filepath.Split(path)
	if name == "" {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	mode, err := destMode(path)
	if err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, "."+name+".tmp*")
	if err != nil {
		return nil, err
	}
	// CreateTemp always uses 0600
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	return &File{
		dstPath: path,
		dir:     dir,
		tmp:     tmp,
		tmpPath: tmp.Name(),
	}, nil
}

func destMode(path string) (fs.FileMode, error) {
	st, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultMode, nil
	}
	if err != nil {
		return 0, err
	}
	return st.Mode().Perm(), nil
}

// remember the first error and drop the temporary file
func (f *File) fail(err error) error {
	if err == nil {
		return nil
	}
	if f.err == nil {
		f.err = err
	}
	_ = f.Close()
	return err
}

func (f *File) Write(d []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n, err := f.tmp.Write(d)
	return n, f.fail(err)
}

func (f *File) WriteString(s string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n, err := f.tmp.WriteString(s)
	return n, f.fail(err)
}

func (f *File) closed() bool {
	return f.tmp == nil
}

// Cancel discards the temporary file. The destination is not touched.
// It is a no-op after Close, so it can be deferred right after New.
func (f *File) Cancel() {
	if f == nil || f.closed() {
		return
	}
	f.err = ErrCancelled
	_ = f.Close()
}

// Close syncs the temporary file and renames it over the destination.
// It can be called more than once; later calls return the first error.
func (f *File) Close() error {
	if f.closed() {
		return f.err
	}
	tmp := f.tmp
	f.tmp = nil

	errSync := tmp.Sync()
	errClose := tmp.Close()

	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(f.tmpPath)
		}
	}()

	if f.err != nil {
		return f.err
	}
	err := errSync
	if err == nil {
		err = errClose
	}
	if err == nil {
		err = os.Rename(f.tmpPath, f.dstPath)
		renamed = err == nil
		// sync the directory so the rename survives a crash
		if d, _ := os.Open(f.dir); d != nil {
			_ = d.Sync()
			_ = d.Close()
		}
	}
	f.err = err
	return err
}
