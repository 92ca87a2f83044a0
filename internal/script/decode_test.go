package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeJSONKeepsKeyOrder(t *testing.T) {
	v, err := Decode([]byte(`{"zeta": 1, "alpha": "a", "mid": [true, null, 2.50]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Kind() != KindMapping {
		t.Fatalf("expected mapping, got %s", v.Kind())
	}
	var keys []string
	for _, e := range v.Entries() {
		keys = append(keys, e.Key)
	}
	if strings.Join(keys, ",") != "zeta,alpha,mid" {
		t.Fatalf("key order lost: %v", keys)
	}
	mid := v.Get("mid").Items()
	if len(mid) != 3 || mid[0].Text() != "true" || !mid[1].IsNull() || mid[2].Text() != "2.50" {
		t.Fatalf("unexpected sequence decode: %+v", mid)
	}
	if !v.Get("alpha").IsText() || v.Get("zeta").IsText() {
		t.Fatalf("text/raw scalar flags wrong")
	}
}

func TestDecodeYAMLMatchesJSON(t *testing.T) {
	fromJSON, err := Decode([]byte(`{"title": "晚宴", "config": {"era": "1935", "playerCount": 6}}`))
	if err != nil {
		t.Fatalf("Decode json: %v", err)
	}
	fromYAML, err := Decode([]byte("title: 晚宴\nconfig:\n  era: \"1935\"\n  playerCount: 6\n"))
	if err != nil {
		t.Fatalf("Decode yaml: %v", err)
	}
	if Dump(fromJSON) != Dump(fromYAML) {
		t.Fatalf("json and yaml decode differ:\n%s\n%s", Dump(fromJSON), Dump(fromYAML))
	}
}

func TestDecodeDuplicateKeysKeepFirstPosition(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	entries := v.Entries()
	if len(entries) != 2 || entries[0].Key != "a" || entries[0].Value.Text() != "3" {
		t.Fatalf("unexpected duplicate handling: %+v", entries)
	}
}

func TestDecodeResolvesAliases(t *testing.T) {
	v, err := Decode([]byte("base: &b\n  era: 1920s\ncopy: *b\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := v.Lookup("copy.era").Text(); got != "1920s" {
		t.Fatalf("alias not resolved, got %q", got)
	}
}

func aliasBomb(levels int) string {
	var b strings.Builder
	b.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= levels; i++ {
		prev := fmt.Sprintf("*a%d", i-1)
		refs := strings.TrimSuffix(strings.Repeat(prev+", ", 9), ", ")
		fmt.Fprintf(&b, "a%d: &a%d [%s]\n", i, i, refs)
	}
	return b.String()
}

func TestDecodeRejectsAliasExpansionBomb(t *testing.T) {
	_, err := Decode([]byte(aliasBomb(8)))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	_, err = Parse([]byte(aliasBomb(8)))
	if !errors.Is(err, ErrInputUnreadable) {
		t.Fatalf("expected ErrInputUnreadable, got %v", err)
	}
}

func TestDecodeAllowsModestAliasReuse(t *testing.T) {
	v, err := Decode([]byte(aliasBomb(2)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := len(v.Get("a2").Items()); got != 9 {
		t.Fatalf("expected 9 expanded items, got %d", got)
	}
}

func TestDecodeRejectsEmptyAndMalformed(t *testing.T) {
	if _, err := Decode([]byte("   \n")); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := Decode([]byte(`{"title": `)); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestParseRequiresMappingRoot(t *testing.T) {
	_, err := Parse([]byte(`["not", "a", "script"]`))
	if !errors.Is(err, ErrInputUnreadable) {
		t.Fatalf("expected ErrInputUnreadable, got %v", err)
	}
	_, err = Parse([]byte(`{"title": `))
	if !errors.Is(err, ErrInputUnreadable) {
		t.Fatalf("expected ErrInputUnreadable for parse error, got %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, ErrInputUnreadable) {
		t.Fatalf("expected ErrInputUnreadable for missing file, got %v", err)
	}
	if _, err := Load(dir); !errors.Is(err, ErrInputUnreadable) {
		t.Fatalf("expected ErrInputUnreadable for directory, got %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrInputUnreadable) {
		t.Fatalf("expected ErrInputUnreadable for malformed file, got %v", err)
	}
}

func TestLoadReadsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")
	payload := `{"title": "赛博朋克", "playerHandbooks": [{"characterName": "A"}, {"characterName": "B"}], "materials": []}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Title().Text() != "赛博朋克" {
		t.Fatalf("unexpected title %q", doc.Title().Text())
	}
	if len(doc.PlayerHandbooks()) != 2 {
		t.Fatalf("expected 2 player handbooks, got %d", len(doc.PlayerHandbooks()))
	}
	if doc.Materials().Kind() != KindSequence || doc.Materials().Present() {
		t.Fatalf("expected empty materials sequence")
	}
	if !doc.BranchStructure().IsNull() {
		t.Fatalf("expected absent branch structure to be null")
	}
}
