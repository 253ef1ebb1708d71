package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/pcx/grammar"
	"gopkg.in/yaml.v3"
)

const listGrammar = `
List   = "[" [ Item { "," Item } ] "]" .
Item   = number | List .
number = digit { digit } .
digit  = "0" … "9" .
ws     = " " | "\t" | "\n" .
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "list.ebnf", listGrammar)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"syntax only", []string{"check", path}, "5 productions", false},
		{"with start and skip", []string{"check", "--start", "List", "--skip", "ws", path}, "start List", false},
		{"unreachable skip", []string{"check", "--start", "List", path}, "", true},
		{"missing start", []string{"check", "--start", "Nope", "--skip", "ws", path}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("check error = %v, wantErr %v\n%s", err, tt.wantErr, out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("check output = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestCheckBadGrammar(t *testing.T) {
	path := writeFile(t, "bad.ebnf", `A = "a" `)

	out, err := run(t, "check", path)
	if err == nil {
		t.Fatal("check accepted an unterminated production")
	}
	if out == "" {
		t.Error("check printed nothing for a bad grammar")
	}
}

func TestParseFormats(t *testing.T) {
	g := writeFile(t, "list.ebnf", listGrammar)
	input := writeFile(t, "input.txt", "[1, [22]]\n")

	out, err := run(t, "parse", "--start", "List", "--skip", "ws", g, input)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if !strings.Contains(out, `number "22" [5,7)`) {
		t.Errorf("tree output = %q, want number 22 at [5,7)", out)
	}

	out, err = run(t, "parse", "--start", "List", "--skip", "ws", "-f", "json", g, input)
	if err != nil {
		t.Fatalf("parse -f json error = %v", err)
	}
	var fromJSON grammar.Node
	if err := json.Unmarshal([]byte(out), &fromJSON); err != nil {
		t.Fatalf("unmarshal json: %v\n%s", err, out)
	}
	if fromJSON.Kind != "List" || fromJSON.Find("number") == nil {
		t.Errorf("json tree = %+v", fromJSON)
	}

	out, err = run(t, "parse", "--start", "List", "--skip", "ws", "-f", "yaml", g, input)
	if err != nil {
		t.Fatalf("parse -f yaml error = %v", err)
	}
	var fromYAML grammar.Node
	if err := yaml.Unmarshal([]byte(out), &fromYAML); err != nil {
		t.Fatalf("unmarshal yaml: %v\n%s", err, out)
	}
	if n := fromYAML.Find("number"); n == nil || n.Text != "1" {
		t.Errorf("yaml first number = %+v", n)
	}

	if _, err := run(t, "parse", "--start", "List", "-f", "xml", g, input); err == nil {
		t.Error("parse accepted an unknown format")
	}
}

func TestParseSyntaxError(t *testing.T) {
	g := writeFile(t, "list.ebnf", listGrammar)
	input := writeFile(t, "input.txt", "[1,]")

	_, err := run(t, "parse", "--start", "List", g, input)
	var se *grammar.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("parse error = %v, want *grammar.SyntaxError", err)
	}
	if se.Location.Filename != input || se.Location.Column != 4 {
		t.Errorf("Location = %v, want %s:1:4", se.Location, input)
	}
}

func TestParseRequiresStart(t *testing.T) {
	g := writeFile(t, "list.ebnf", listGrammar)
	input := writeFile(t, "input.txt", "[]")

	_, err := run(t, "parse", g, input)
	if err == nil || !strings.Contains(err.Error(), "no start production") {
		t.Errorf("parse error = %v, want missing start", err)
	}
}

func TestSettingsFromEnvironmentAndConfig(t *testing.T) {
	g := writeFile(t, "list.ebnf", listGrammar)

	t.Setenv("PCX_START", "List")
	t.Setenv("PCX_SKIP", "ws")
	out, err := run(t, "check", g)
	if err != nil || !strings.Contains(out, "start List") {
		t.Errorf("check with PCX_* = %q, %v", out, err)
	}

	t.Setenv("PCX_START", "")
	t.Setenv("PCX_SKIP", "")
	cfg := writeFile(t, "pcx.yaml", "start: List\nskip: ws\n")
	out, err = run(t, "check", "--config", cfg, g)
	if err != nil || !strings.Contains(out, "start List") {
		t.Errorf("check with --config = %q, %v", out, err)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			"digits",
			[]string{"match", "--class", "digit", "12a"},
			"matched \"12\"\nposition 3\nstopped: parse error at 3: expected <condition>\n",
		},
		{
			"negated",
			[]string{"match", "--class", "digit", "--not", "ab1"},
			"matched \"ab\"\nposition 3\nstopped: parse error at 3: expected <condition>\n",
		},
		{
			"whole input",
			[]string{"match", "-c", "lower", "abc"},
			"matched \"abc\"\nposition 3\nstopped: parse error at 3: expected <condition>\n",
		},
		{
			"once",
			[]string{"match", "--class", "digit", "--once", "1a"},
			"matched \"1\"\nposition 1\n",
		},
		{
			"once mismatch",
			[]string{"match", "--class", "digit", "--once", "a1"},
			"matched \"\"\nposition 1\nstopped: parse error at 1: expected <condition>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("match error = %v", err)
			}
			if out != tt.want {
				t.Errorf("match output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestMatchUnknownClass(t *testing.T) {
	if _, err := run(t, "match", "--class", "emoji", "x"); err == nil {
		t.Error("match accepted an unknown class")
	}
}
