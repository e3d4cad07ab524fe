package filesystem

import (
	"io/fs"
)

// FS is the read-side filesystem surface the pipeline observes through.
// Mutations never go through this interface; they are executed as synthfs
// operations so that each one is individually validated and reported.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	Readlink(name string) (string, error)
}
