package fsops

// FakeDeleter reads the real filesystem but only records deletions.
// Paths listed in Fail return that error instead of being recorded as done.
type FakeDeleter struct {
	OSDeleter
	Fail  map[string]error
	Calls []string
}

func (f *FakeDeleter) Remove(path string) error {
	f.Calls = append(f.Calls, "rm:"+path)
	return f.Fail[path]
}

func (f *FakeDeleter) RemoveAll(path string) error {
	f.Calls = append(f.Calls, "rmall:"+path)
	return f.Fail[path]
}
