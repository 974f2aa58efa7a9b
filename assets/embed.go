package assets

import (
	"embed"
	"io"
)

//go:embed words.txt
var FS embed.FS

// WordsName is the name of the bundled dictionary inside FS.
const WordsName = "words.txt"

// OpenWords opens the bundled newline-delimited dictionary.
func OpenWords() (io.ReadCloser, error) {
	return FS.Open(WordsName)
}
