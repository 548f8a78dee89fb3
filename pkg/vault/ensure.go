package vault

import (
	"fmt"
	"strings"
)

// FolderCreationError reports a failed provisioning step, naming the
// deepest path prefix that could not be checked or created.
type FolderCreationError struct {
	Path string
	Err  error
}

func (e *FolderCreationError) Error() string {
	return fmt.Sprintf("create folder %s: %v", e.Path, e.Err)
}

func (e *FolderCreationError) Unwrap() error { return e.Err }

// Ensure makes every segment of a slash-delimited folder path exist,
// creating missing ones parent-first. Calling it again with the same path
// performs no creation work. On failure it aborts at the failing segment;
// segments already created stay in place, since retrying is safe.
func Ensure(v Vault, path string) error {
	var prefix string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if prefix == "" {
			prefix = seg
		} else {
			prefix += "/" + seg
		}

		ok, err := v.Exists(prefix)
		if err != nil {
			return &FolderCreationError{Path: prefix, Err: err}
		}
		if ok {
			continue
		}
		if err := v.CreateDirectory(prefix); err != nil {
			return &FolderCreationError{Path: prefix, Err: err}
		}
	}
	return nil
}
