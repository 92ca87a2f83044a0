package script

import (
	"errors"
	"fmt"
	"os"
)

// ErrInputUnreadable marks every failure to obtain a usable document: missing
// or unreadable file, parse failure, or a root that is not a mapping.
var ErrInputUnreadable = errors.New("script: input unreadable")

// Document is a read-only view over a parsed script. Accessors return raw
// Values; defaults are resolved by the renderer that consumes them.
type Document struct {
	root Value
}

// NewDocument wraps an already decoded root mapping.
func NewDocument(root Value) (Document, error) {
	if root.Kind() != KindMapping {
		return Document{}, fmt.Errorf("%w: root is a %s, expected a mapping", ErrInputUnreadable, root.Kind())
	}
	return Document{root: root}, nil
}

// Parse decodes a JSON or YAML payload into a Document.
func Parse(data []byte) (Document, error) {
	root, err := Decode(data)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	return NewDocument(root)
}

// Load reads and parses the document stored at path.
func Load(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: open %s: %v", ErrInputUnreadable, path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%w: %s is a directory, expected a file", ErrInputUnreadable, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: read %s: %v", ErrInputUnreadable, path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Root returns the whole tree.
func (d Document) Root() Value { return d.root }

// Title is the script title.
func (d Document) Title() Value { return d.root.Get("title") }

// CreatedAt is the generation timestamp recorded in the document.
func (d Document) CreatedAt() Value { return d.root.Get("createdAt") }

// UpdatedAt is the last modification timestamp, when recorded.
func (d Document) UpdatedAt() Value { return d.root.Get("updatedAt") }

// Version is the script revision label.
func (d Document) Version() Value { return d.root.Get("version") }

// Status is the script lifecycle status.
func (d Document) Status() Value { return d.root.Get("status") }

// AIProvider and AIModel name the generator that produced the script.
func (d Document) AIProvider() Value { return d.root.Get("aiProvider") }

func (d Document) AIModel() Value { return d.root.Get("aiModel") }

// Config holds the display parameters (player count, duration, era, ...).
func (d Document) Config() Value { return d.root.Get("config") }

// DMHandbook is the director's reference material.
func (d Document) DMHandbook() Value { return d.root.Get("dmHandbook") }

// PlayerHandbooks lists one handbook per player, in seat order.
func (d Document) PlayerHandbooks() []Value { return d.root.Get("playerHandbooks").Items() }

// Materials are the printable cards and props.
func (d Document) Materials() Value { return d.root.Get("materials") }

// BranchStructure is the branching narrative graph.
func (d Document) BranchStructure() Value { return d.root.Get("branchStructure") }
