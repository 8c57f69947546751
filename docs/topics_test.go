package docs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// knownLanguages are the only info strings allowed on fenced code blocks in
// the documentation.
var knownLanguages = []string{"sh", "console", "json", "jsonl"}

// knownSubcommands mirrors the subcommands the dbk binary registers, to
// validate command lines quoted in the documentation.
var knownSubcommands = []string{
	"add", "rm", "list", "ledger", "schedule", "provision",
	"expand", "reconcile", "fmt", "import", "topic", "assist",
}

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with the code.
	// It checks two things:
	// 1. Every topic listed in docs/readme.md can be successfully loaded by the dbk topic <topic_name> command.
	// 2. Every .md file in the docs directory (excluding readme.md itself) is present in the list of topics extracted from docs/readme.md.

	// Read docs/readme.md line by line and extract topics using regex.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		line := scanner.Text()
		matches := topicRegex.FindStringSubmatch(line)
		if len(matches) > 1 {
			topic := strings.TrimSpace(matches[1])
			topicsInReadme = append(topicsInReadme, topic)
		}
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	// Check 1: Every topic listed in docs/readme.md can be successfully loaded.
	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			_, err := GetTopic(topic)
			if err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	// Check 2: Every .md file in the docs directory (excluding readme.md itself) is present in the list of topics extracted from docs/readme.md.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}

	var mdFiles []string
	for _, file := range files {
		base := filepath.Base(file)
		if base != "readme.md" {
			mdFiles = append(mdFiles, strings.TrimSuffix(base, ".md"))
		}
	}

	for _, mdFile := range mdFiles {
		if !slices.Contains(topicsInReadme, mdFile) {
			t.Errorf("topic %q is not listed in docs/readme.md", mdFile)
		}
	}
}

func TestCodeBlocks(t *testing.T) {
	// The documentation quotes shell sessions and storage samples. This test
	// keeps them honest without executing anything: every fenced block must
	// declare a known language, every quoted dbk invocation must name a real
	// subcommand, and every json/jsonl sample must actually parse.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			for _, block := range parseMarkdown(t, file) {
				checkBlock(t, block)
			}
		})
	}
}

func checkBlock(t *testing.T, block *Block) {
	t.Helper()

	switch block.Type {
	case "sh", "console":
		checkCommandLines(t, block)
	case "json":
		if !json.Valid([]byte(block.Content)) {
			t.Errorf("%s:%d: invalid json block", block.File, block.Line)
		}
	case "jsonl":
		for i, line := range strings.Split(block.Content, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !json.Valid([]byte(line)) {
				t.Errorf("%s:%d: invalid json on jsonl line %d", block.File, block.Line, i+1)
			}
		}
	default:
		t.Errorf("%s:%d: code block language %q is not one of %v", block.File, block.Line, block.Type, knownLanguages)
	}
}

// checkCommandLines validates every dbk invocation quoted in a sh or console
// block against the list of registered subcommands.
func checkCommandLines(t *testing.T, block *Block) {
	t.Helper()

	scanner := bufio.NewScanner(strings.NewReader(block.Content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "$ ")
		if line != "dbk" && !strings.HasPrefix(line, "dbk ") {
			continue // command output, or plain shell
		}
		sub := subcommandOf(line)
		if sub == "" {
			t.Errorf("%s:%d: %q names no subcommand", block.File, block.Line, line)
			continue
		}
		if !slices.Contains(knownSubcommands, sub) {
			t.Errorf("%s:%d: unknown subcommand %q in %q", block.File, block.Line, sub, line)
		}
	}
}

// subcommandOf extracts the subcommand from a dbk command line. Global flags
// may precede the subcommand; the documentation writes them in -flag=value
// form so they are single tokens.
func subcommandOf(line string) string {
	fields := strings.Fields(line)
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "-") {
			continue
		}
		return f
	}
	return ""
}

// HELPER

// Block represents a fenced code block in the markdown file.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

// parseMarkdown parses a markdown file and returns a list of Blocks.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	mdParser := goldmark.DefaultParser()
	root := mdParser.Parse(text.NewReader(content))

	// Read all blocks.

	var blocks []*Block

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var lang string
		var startOffset int
		if fcb.Info != nil {
			lang = string(fcb.Info.Segment.Value(content))
			startOffset = fcb.Info.Segment.Start
		} else if fcb.Lines().Len() > 0 {
			startOffset = fcb.Lines().At(0).Start
		}

		var blockContent strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			blockContent.WriteString(string(line.Value(content)))
		}

		blocks = append(blocks, &Block{
			Type:    lang,
			Content: blockContent.String(),
			File:    file,
			Line:    lineNumber(content, startOffset),
		})
		return ast.WalkContinue, nil
	})

	return blocks
}

// lineNumber computes the lineNumber for a given offset AST offset.
// the markdown parser we use does not support that feature so we
// have to implement it.
func lineNumber(source []byte, offset int) (lineNumber int) {
	newline := []byte{'\n'}
	// Create a slice of the source from the beginning to the node's offset.
	sourceToNode := source[:offset]

	// Count the number of newlines in that slice.
	lineCount := bytes.Count(sourceToNode, newline)

	// The line number is the number of newlines + 1.
	return lineCount + 1
}
