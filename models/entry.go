package models

// Entry is one regular file read from a source container.
// Name is always slash-separated and relative to the container root.
type Entry struct {
	Name string
	Data []byte
}
