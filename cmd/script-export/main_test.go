package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gdgeek/murder-mystery-generator/internal/artifact"
	"github.com/gdgeek/murder-mystery-generator/internal/logging"
	"github.com/gdgeek/murder-mystery-generator/internal/script"
)

const sampleScript = `{
  "title": "赛博朋克2077-AI觉醒",
  "config": {"playerCount": 2},
  "dmHandbook": {"overview": "夜之城", "truthReveal": "AI是凶手"},
  "playerHandbooks": [
    {"characterId": "p1", "characterName": "V", "primaryGoal": "活下去"},
    {"characterId": "p2", "characterName": "Judy", "primaryGoal": "复仇"}
  ],
  "materials": [{"type": "clue_card", "id": "C1", "content": "芯片"}],
  "branchStructure": {"nodes": [{"id": "N1", "type": "vote", "content": "投票"}]}
}`

func writeInput(t *testing.T, name, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("seed input: %v", err)
	}
	return path
}

func readDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	files := map[string]string{}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		files[e.Name()] = string(data)
	}
	return files
}

func TestRunWritesEveryArtifact(t *testing.T) {
	input := writeInput(t, "script.json", sampleScript)
	out := filepath.Join(t.TempDir(), "export")
	var stdout, stderr bytes.Buffer
	if err := run([]string{input, out}, &stdout, logging.New(&stderr)); err != nil {
		t.Fatalf("run: %v", err)
	}
	files := readDir(t, out)
	var names []string
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	want := []string{"README.md", "branch-structure.md", "dm-handbook.md", "materials.md", "player-1-V.md", "player-2-Judy.md"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected artifacts %v, want %v", names, want)
	}
	if !strings.Contains(stdout.String(), "Exported 6 artifacts") {
		t.Fatalf("summary missing from stdout:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "(2 players)") {
		t.Fatalf("expected load log line, got %q", stderr.String())
	}
}

func TestRunIsIdempotent(t *testing.T) {
	input := writeInput(t, "script.json", sampleScript)
	out := t.TempDir()
	if err := run([]string{input, out}, &bytes.Buffer{}, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := readDir(t, out)
	var stdout bytes.Buffer
	if err := run([]string{input, out}, &stdout, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := readDir(t, out)
	if len(first) != len(second) {
		t.Fatalf("artifact count changed: %d vs %d", len(first), len(second))
	}
	for name, body := range first {
		if second[name] != body {
			t.Fatalf("%s changed between runs", name)
		}
	}
	if strings.Contains(stdout.String(), "written") {
		t.Fatalf("expected every artifact unchanged on rerun:\n%s", stdout.String())
	}
}

func TestRunAcceptsYAML(t *testing.T) {
	yamlInput := writeInput(t, "script.yaml", strings.Join([]string{
		"title: 赛博朋克2077-AI觉醒",
		"config:",
		"  playerCount: 2",
		"dmHandbook:",
		"  overview: 夜之城",
		"  truthReveal: AI是凶手",
		"playerHandbooks:",
		"  - characterId: p1",
		"    characterName: V",
		"    primaryGoal: 活下去",
		"  - characterId: p2",
		"    characterName: Judy",
		"    primaryGoal: 复仇",
		"materials:",
		"  - {type: clue_card, id: C1, content: 芯片}",
		"branchStructure:",
		"  nodes:",
		"    - {id: N1, type: vote, content: 投票}",
	}, "\n"))
	jsonInput := writeInput(t, "script.json", sampleScript)
	yamlOut, jsonOut := t.TempDir(), t.TempDir()
	if err := run([]string{yamlInput, yamlOut}, &bytes.Buffer{}, nil); err != nil {
		t.Fatalf("yaml run: %v", err)
	}
	if err := run([]string{jsonInput, jsonOut}, &bytes.Buffer{}, nil); err != nil {
		t.Fatalf("json run: %v", err)
	}
	fromYAML, fromJSON := readDir(t, yamlOut), readDir(t, jsonOut)
	for name, body := range fromJSON {
		if fromYAML[name] != body {
			t.Fatalf("%s differs between JSON and YAML input:\n%s\n---\n%s", name, body, fromYAML[name])
		}
	}
}

func TestRunInputUnreadableWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "export")
	bad := writeInput(t, "bad.json", `{"title": `)
	for _, input := range []string{bad, filepath.Join(t.TempDir(), "missing.json")} {
		err := run([]string{input, out}, &bytes.Buffer{}, nil)
		if !errors.Is(err, script.ErrInputUnreadable) {
			t.Fatalf("expected ErrInputUnreadable for %s, got %v", input, err)
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output directory created despite unreadable input")
	}
}

func TestRunOutputUnwritable(t *testing.T) {
	input := writeInput(t, "script.json", sampleScript)
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := run([]string{input, blocked}, &bytes.Buffer{}, nil)
	if !errors.Is(err, artifact.ErrOutputUnwritable) {
		t.Fatalf("expected ErrOutputUnwritable, got %v", err)
	}
}

func TestRunWarnsOnOddPlayerHandbooks(t *testing.T) {
	cases := map[string]string{
		`{"title": "t", "playerHandbooks": {"characterName": "V"}}`: "WARN  playerHandbooks is a mapping",
		`{"title": "t"}`: "declares no player handbooks",
	}
	for payload, want := range cases {
		input := writeInput(t, "script.json", payload)
		var stderr bytes.Buffer
		if err := run([]string{input, t.TempDir()}, &bytes.Buffer{}, logging.New(&stderr)); err != nil {
			t.Fatalf("run: %v", err)
		}
		if !strings.Contains(stderr.String(), want) {
			t.Fatalf("expected %q in log, got %q", want, stderr.String())
		}
	}
}

func TestRunLongCharacterName(t *testing.T) {
	payload := `{"playerHandbooks": [{"characterName": "A"}, {"characterName": "` + strings.Repeat("长", 90) + `"}]}`
	input := writeInput(t, "script.json", payload)
	out := t.TempDir()
	if err := run([]string{input, out}, &bytes.Buffer{}, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := len(readDir(t, out)); got != 6 {
		t.Fatalf("expected 6 artifacts, got %d", got)
	}
}

func TestRunUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"only-input"}, {"a", "b", "c"}} {
		if err := run(args, &bytes.Buffer{}, nil); !errors.Is(err, errUsage) {
			t.Fatalf("args %v: expected usage error, got %v", args, err)
		}
	}
}
