package adapters

import (
	"embed"
	"io/fs"
	"os"
	"strings"
)

//go:embed catalogdata/*.yaml
var embeddedCatalogs embed.FS

// CatalogFS returns dir as a file system, or the compiled-in catalogs when
// dir is empty.
func CatalogFS(dir string) fs.FS {
	if strings.TrimSpace(dir) != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embeddedCatalogs, "catalogdata")
	if err != nil {
		panic(err)
	}
	return sub
}
