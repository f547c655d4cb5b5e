// Package replhistory persists a REPL session's transcript as JSON Lines so
// the `.历史` command can play it back. Each entry is appended independently
// via sjson rather than re-marshaling the whole document on every line.
package replhistory

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Entry is one REPL turn: the source line the user typed and the error
// text it produced (empty when the line ran without error).
type Entry struct {
	Line   string
	Result string
}

// History appends to, and reads back, a JSON-Lines scratch file for the
// lifetime of one REPL session.
type History struct {
	path string
}

// New creates a History backed by a temp file scoped to this process. The
// file is created empty; callers that want a clean session should call
// Close when the REPL exits.
func New() (*History, error) {
	f, err := os.CreateTemp("", "vscript-history-*.jsonl")
	if err != nil {
		return nil, fmt.Errorf("创建历史文件失败: %w", err)
	}
	path := f.Name()
	f.Close()
	return &History{path: path}, nil
}

// Append records one turn. It builds the entry as a JSON object with sjson
// and appends it to the file as its own line; existing lines are neither
// read nor rewritten.
func (h *History) Append(e Entry) error {
	obj, err := sjson.Set("{}", "line", e.Line)
	if err != nil {
		return err
	}
	obj, err = sjson.Set(obj, "result", e.Result)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("打开历史文件失败: %w", err)
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, obj)
	return err
}

// Entries reads every recorded turn back in order, using gjson to pull the
// two fields out of each line without a full struct unmarshal.
func (h *History) Entries() ([]Entry, error) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return nil, fmt.Errorf("读取历史文件失败: %w", err)
	}

	var entries []Entry
	for _, line := range splitLines(string(data)) {
		if line == "" {
			continue
		}
		r := gjson.Parse(line)
		entries = append(entries, Entry{
			Line:   r.Get("line").String(),
			Result: r.Get("result").String(),
		})
	}
	return entries, nil
}

// Close removes the backing temp file.
func (h *History) Close() error {
	return os.Remove(h.path)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
