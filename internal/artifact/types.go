// Package artifact defines the files an export produces. Each artifact has a
// stable identifier, a kind, and a file name inside the output directory;
// the names double as the relative link targets between artifacts.
package artifact

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind captures which part of the script an artifact describes.
type Kind string

const (
	// KindIndex is the README entry point linking every other artifact.
	KindIndex Kind = "index"
	// KindDMHandbook is the director's master reference.
	KindDMHandbook Kind = "dm-handbook"
	// KindPlayer is one player's handbook.
	KindPlayer Kind = "player"
	// KindMaterials is the catalog of printable materials.
	KindMaterials Kind = "materials"
	// KindBranch describes the branching narrative graph.
	KindBranch Kind = "branch-structure"
)

// File names for the fixed artifacts.
const (
	FileIndex      = "README.md"
	FileDMHandbook = "dm-handbook.md"
	FileMaterials  = "materials.md"
	FileBranch     = "branch-structure.md"
)

// Ref declares a stable identifier and file name for an artifact.
type Ref struct {
	ID       string
	Name     string
	FileName string
	Kind     Kind
}

// Link returns the same-directory relative link target for the artifact.
func (r Ref) Link() string {
	return "./" + r.FileName
}

// Validate ensures the reference is well-formed and stays inside the output
// directory.
func (r Ref) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("artifact: id is required")
	}
	if r.Kind == "" {
		return fmt.Errorf("artifact: kind is required for %s", r.ID)
	}
	if r.FileName == "" {
		return fmt.Errorf("artifact: file name is required for %s", r.ID)
	}
	if filepath.Base(r.FileName) != r.FileName || r.FileName == "." || r.FileName == ".." {
		return fmt.Errorf("artifact: file name %q for %s must not contain directories", r.FileName, r.ID)
	}
	return nil
}

// Artifact is a rendered file ready to be written.
type Artifact struct {
	Ref
	Body []byte
}

// New builds an artifact from its rendered lines. Lines are joined with
// newlines; renderers end their line lists with an empty line so every file
// terminates with a newline.
func New(ref Ref, lines []string) Artifact {
	return Artifact{Ref: ref, Body: []byte(strings.Join(lines, "\n"))}
}

// Canonical references for the fixed artifacts.
var (
	IndexRef      = Ref{ID: "index", Name: "Index", FileName: FileIndex, Kind: KindIndex}
	DMHandbookRef = Ref{ID: "dm-handbook", Name: "DM Handbook", FileName: FileDMHandbook, Kind: KindDMHandbook}
	MaterialsRef  = Ref{ID: "materials", Name: "Materials", FileName: FileMaterials, Kind: KindMaterials}
	BranchRef     = Ref{ID: "branch-structure", Name: "Branch Structure", FileName: FileBranch, Kind: KindBranch}
)

// maxFileName is the common file-name limit (NAME_MAX) in bytes.
const maxFileName = 255

// PlayerRef builds the reference for the player at the 1-based position,
// named after the character. The file name is player-<position>-<name>.md,
// with the name part shortened on a rune boundary to fit maxFileName.
func PlayerRef(position int, name string) Ref {
	id := "player-" + strconv.Itoa(position)
	prefix, ext := id+"-", ".md"
	return Ref{
		ID:       id,
		Name:     name,
		FileName: prefix + truncate(fileSafe(name), maxFileName-len(prefix)-len(ext)) + ext,
		Kind:     KindPlayer,
	}
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := 0
	for i := range s {
		if i > limit {
			break
		}
		cut = i
	}
	return s[:cut]
}

// fileSafe keeps the display name readable while preventing it from naming
// another directory. Names are NFC-normalized so composed and decomposed
// input spell the same file.
func fileSafe(name string) string {
	cleaned := norm.NFC.String(strings.TrimSpace(name))
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '-'
		}
		return r
	}, cleaned)
	return cleaned
}
