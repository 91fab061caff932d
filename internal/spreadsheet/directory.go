package spreadsheet

import (
	"strings"
)

// directory maps ids to display names for export, and ids, names or other
// aliases back to ids for import.
type directory struct {
	names map[string]string
	ids   map[string]string
}

func newDirectory() *directory {
	return &directory{
		names: make(map[string]string),
		ids:   make(map[string]string),
	}
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func (d *directory) add(id, name string, aliases ...string) {
	d.names[id] = name
	d.ids[normalize(id)] = id
	for _, key := range append([]string{name}, aliases...) {
		if key == "" {
			continue
		}
		// first record wins on ambiguous names
		if _, taken := d.ids[normalize(key)]; !taken {
			d.ids[normalize(key)] = id
		}
	}
}

// name renders a reference. Unknown ids are shown as-is.
func (d *directory) name(id *string) string {
	if id == nil {
		return ""
	}
	if n, ok := d.names[*id]; ok {
		return n
	}
	return *id
}

func (d *directory) lookup(key string) (string, bool) {
	id, ok := d.ids[normalize(key)]
	return id, ok
}
