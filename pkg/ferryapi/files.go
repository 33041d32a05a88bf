package ferryapi

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

var filenamePattern = regexp.MustCompile(`filename="?([^";]+)"?`)

// FilenameFromDisposition returns the file name announced by a
// Content-Disposition header, or fallback when none can be read.
func FilenameFromDisposition(header, fallback string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return fallback
	}
	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := cleanFilename(params["filename"]); name != "" {
			return name
		}
	}
	if match := filenamePattern.FindStringSubmatch(header); len(match) == 2 {
		if name := cleanFilename(match[1]); name != "" {
			return name
		}
	}
	return fallback
}

func cleanFilename(name string) string {
	name = strings.Trim(strings.TrimSpace(name), `"`)
	if name == "" {
		return ""
	}
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

func readFile(resp *http.Response, fallback string) (sales.File, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return sales.File{}, fmt.Errorf("ferryapi: read file: %w: %w", sales.ErrTransport, err)
	}
	return sales.File{
		Name:        FilenameFromDisposition(resp.Header.Get("Content-Disposition"), fallback),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
