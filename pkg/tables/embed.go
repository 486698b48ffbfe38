package tables

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data
var dataFS embed.FS

// Default returns the compiled-in table set. It is loaded once.
var Default = sync.OnceValues(func() (*Set, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
})
