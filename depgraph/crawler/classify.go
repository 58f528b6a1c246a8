package crawler

import (
	"path/filepath"

	"github.com/src-d/enry/v2"
)

// moduleLanguage is the only language whose files are crawled.
const moduleLanguage = "JavaScript"

// ModuleMIMEType is the MIME type accepted as a crawlable module file.
var ModuleMIMEType = enry.GetMIMEType("index.js", moduleLanguage)

// Classifier maps a path to a MIME type, or "" when the type is unknown.
type Classifier func(path string) string

// ClassifyMIMEType looks up the MIME type of path from its extension.
func ClassifyMIMEType(path string) string {
	language, _ := enry.GetLanguageByExtension(filepath.Base(path))
	if language == "" {
		return ""
	}
	return enry.GetMIMEType(path, language)
}
