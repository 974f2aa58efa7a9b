// internal/words/words.go
//
// Dictionary loading and lookup.
//
// Responsibilities:
//   - Read a newline-delimited word list into a set (O(1) membership tests).
//   - Sources: any io.Reader, a file path, a SQLite table, or the embedded default.
//   - Case-insensitive lookups: entries are stored lowercase.
//
// Lines are trimmed and lower-cased; blank lines and lines starting with '#'
// are skipped. A Dictionary is immutable once loaded and safe for concurrent reads.

package words

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robalobadob/boggle/apps/go-server/assets"
)

// ResourceError reports a dictionary source that could not be read.
// It is fatal at startup; it never occurs per request.
type ResourceError struct {
	Source string
	Err    error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("words: cannot read dictionary %q: %v", e.Source, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Dictionary is a read-only set of lowercase words.
type Dictionary struct {
	set map[string]struct{}
}

// New builds a Dictionary from an in-memory list.
func New(list ...string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	for _, w := range list {
		d.add(w)
	}
	return d
}

// Load reads one word per line from r.
func Load(r io.Reader) (*Dictionary, error) {
	return load(r, "reader")
}

func load(r io.Reader, src string) (*Dictionary, error) {
	d := New()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		d.add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, &ResourceError{Source: src, Err: err}
	}
	return d, nil
}

// LoadFile reads a word list from path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Source: path, Err: err}
	}
	defer f.Close()
	return load(f, path)
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQL reads the "word" column of table. The table name is validated
// because it cannot be bound as a query parameter.
func LoadSQL(ctx context.Context, db *sql.DB, table string) (*Dictionary, error) {
	src := "sql:" + table
	if !tableName.MatchString(table) {
		return nil, &ResourceError{Source: src, Err: errors.New("invalid table name")}
	}
	rows, err := db.QueryContext(ctx, `SELECT word FROM `+table)
	if err != nil {
		return nil, &ResourceError{Source: src, Err: err}
	}
	defer rows.Close()

	d := New()
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, &ResourceError{Source: src, Err: err}
		}
		d.add(w)
	}
	if err := rows.Err(); err != nil {
		return nil, &ResourceError{Source: src, Err: err}
	}
	return d, nil
}

// LoadSQLite opens the existing SQLite database at path read-only and loads
// table from it. Nothing is created on disk when path is wrong.
func LoadSQLite(ctx context.Context, path, table string) (*Dictionary, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ResourceError{Source: path, Err: err}
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &ResourceError{Source: path, Err: err}
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return nil, &ResourceError{Source: path, Err: err}
	}
	return LoadSQL(ctx, db, table)
}

// Default loads the word list bundled into the binary.
func Default() (*Dictionary, error) {
	f, err := assets.OpenWords()
	if err != nil {
		return nil, &ResourceError{Source: "embedded:" + assets.WordsName, Err: err}
	}
	defer f.Close()
	return load(f, "embedded:"+assets.WordsName)
}

func (d *Dictionary) add(line string) {
	w := strings.ToLower(strings.TrimSpace(line))
	if w == "" || strings.HasPrefix(w, "#") {
		return
	}
	d.set[w] = struct{}{}
}

// Contains reports whether w is in the dictionary, ignoring case.
func (d *Dictionary) Contains(w string) bool {
	if d == nil {
		return false
	}
	_, ok := d.set[strings.ToLower(w)]
	return ok
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.set)
}

// Words returns all entries sorted alphabetically.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.set))
	for w := range d.set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
