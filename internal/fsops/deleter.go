package fsops

import "io/fs"

// Deleter abstracts the filesystem calls the remover makes.
// Lets tests inject failures without fighting file permissions.
type Deleter interface {
	Lstat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Remove(path string) error
	RemoveAll(path string) error
}
