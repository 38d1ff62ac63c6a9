// importer/zip.go
package importer

import "github.com/xyproto/unzip"

func extractZip(src, dst string) error {
	return unzip.Extract(src, dst)
}
