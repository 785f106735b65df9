package library

import (
	"path"
	"strings"
)

// languages maps file extensions to editor display languages, matching
// what the library service stores.
var languages = map[string]string{
	".html": "html",
	".xml":  "xml",
	".js":   "javascript",
	".py":   "python",
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
	".css":  "css",
	".scss": "scss",
}

// LanguageForPath derives the display language for a library item from
// its extension. Unmapped or missing extensions yield an empty string,
// which means no language tag rather than an error.
func LanguageForPath(itemPath string) string {
	ext := strings.ToLower(path.Ext(itemPath))
	return languages[ext]
}
