// Package textresource serves the canned replies of static bot commands.
// A command "/about" is answered with the contents of about.md,
// about.html or about.txt from the commands folder, whichever is found
// first in the configured format order.
package textresource

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultFolder is where static commands live by default.
const DefaultFolder = "botcommands"

// Response is the text of a static command and its markup.
type Response struct {
	Format Format
	Text   string
}

type entry struct {
	resp Response
	ok   bool
}

// Loader looks up static command files. Lookups, including misses, are
// cached for the lifetime of the Loader.
type Loader struct {
	fsys    fs.FS
	folder  string
	formats []Format
	cache   sync.Map // command -> entry
}

// New creates a Loader reading folder inside fsys. With no formats the
// DefaultFormats order is used.
func New(fsys fs.FS, folder string, formats ...Format) *Loader {
	if folder == "" {
		folder = "."
	}
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	return &Loader{
		fsys:    fsys,
		folder:  folder,
		formats: slices.Clone(formats),
	}
}

// Compose returns the canned reply for command. A leading "/" is ignored.
func (l *Loader) Compose(command string) (Response, bool) {
	name := strings.TrimPrefix(command, "/")
	if !validName(name) {
		return Response{}, false
	}
	if v, ok := l.cache.Load(name); ok {
		e := v.(entry)
		return e.resp, e.ok
	}
	resp, ok := l.lookup(name)
	l.cache.Store(name, entry{resp: resp, ok: ok})
	return resp, ok
}

func (l *Loader) lookup(name string) (Response, bool) {
	for _, f := range l.formats {
		for _, ext := range f.Extensions() {
			data, err := fs.ReadFile(l.fsys, path.Join(l.folder, name+"."+ext))
			if err != nil {
				continue
			}
			text := strings.TrimSpace(string(data))
			if text == "" {
				continue
			}
			return Response{Format: f, Text: text}, true
		}
	}
	return Response{}, false
}

// Commands lists the names of the available static commands, sorted and
// without duplicates.
func (l *Loader) Commands() ([]string, error) {
	var exts []string
	for _, f := range l.formats {
		exts = append(exts, f.Extensions()...)
	}
	if len(exts) == 0 {
		return nil, nil
	}
	pattern := path.Join(l.folder, "*.{"+strings.Join(exts, ",")+"}")
	matches, err := doublestar.Glob(l.fsys, pattern)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing static commands: %w", err)
	}

	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		base := path.Base(m)
		name := strings.TrimSuffix(base, path.Ext(base))
		if !validName(name) || seen[name] {
			continue
		}
		if _, ok := l.Compose(name); !ok {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// validName rejects anything that could escape the commands folder.
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\ `)
}
