package watcher

import "context"

// FileWatcher monitors a fixed set of files for changes with debouncing.
type FileWatcher interface {
	// Start begins watching, calling callback with each debounced batch of changed files.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error
}

// Reloadable is a component that rebuilds its state from the files it was created from.
type Reloadable interface {
	Reload(ctx context.Context, files []string) error
}
