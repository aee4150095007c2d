package dict

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aspellgo/aspellgo/lang"
)

const replacementHeader = "personal_repl-1.1"

// Replacement is the replacement dictionary: same shape as Personal, but
// each stored misspelling owns a vector of replacement strings.
type Replacement struct {
	unsupported

	mu       sync.Mutex
	path     string
	l        *lang.Language
	encoding string
	byClean  map[string][]string // misspelling clean form -> replacement list, insertion order
}

func NewReplacement(path string, l *lang.Language, encoding string) *Replacement {
	return &Replacement{path: path, l: l, encoding: encoding, byClean: make(map[string][]string)}
}

// LoadReplacement reads a personal_repl-1.1 file.
func LoadReplacement(path string, l *lang.Language) (*Replacement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cant_read_file: %w", err)
	}
	defer f.Close()

	r := NewReplacement(path, l, "utf-8")
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return nil, fmt.Errorf("bad_file_format: empty replacement dictionary %s", path)
	}
	header := sc.Text()
	fields := strings.Fields(header)
	if len(fields) != 4 || fields[0] != replacementHeader {
		return nil, fmt.Errorf("bad_file_format: malformed header %q", header)
	}
	r.encoding = fields[3]

	for sc.Scan() {
		line := unescapePersonalLine(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}
		r.addRepl(parts[0], parts[1])
	}
	return r, nil
}

func (r *Replacement) Name() string             { return r.path }
func (r *Replacement) Language() *lang.Language { return r.l }
func (r *Replacement) SupportedFlags() Flags    { return Flags{} }

func (r *Replacement) addRepl(misspelling, replacement string) {
	clean := r.l.ToClean(misspelling)
	for _, existing := range r.byClean[clean] {
		if existing == replacement {
			return // duplicates silently ignored, 
		}
	}
	r.byClean[clean] = append(r.byClean[clean], replacement)
}

func (r *Replacement) ReplLookup(misspelling string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reps := r.byClean[r.l.ToClean(misspelling)]
	out := make([]string, len(reps))
	copy(out, reps)
	return out, nil
}

func (r *Replacement) AddRepl(misspelling, replacement string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addRepl(misspelling, replacement)
	return nil
}

func (r *Replacement) RemoveRepl(misspelling, replacement string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clean := r.l.ToClean(misspelling)
	r.byClean[clean] = removeString(r.byClean[clean], replacement)
	if len(r.byClean[clean]) == 0 {
		delete(r.byClean, clean)
	}
	return nil
}

func (r *Replacement) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byClean = make(map[string][]string)
	return nil
}

func (r *Replacement) SaveNoupdate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	unlock, err := acquireFileLock(r.path)
	if err != nil {
		return fmt.Errorf("cant_write_file: %w", err)
	}
	defer unlock()

	tmp := r.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cant_write_file: %w", err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s %s 0 %s\n", replacementHeader, r.l.Name, r.encoding)
	for clean, reps := range r.byClean {
		for _, rep := range reps {
			fmt.Fprintf(w, "%s %s\n", escapePersonalLine(clean), escapePersonalLine(rep))
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("cant_write_file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cant_write_file: %w", err)
	}
	return os.Rename(tmp, r.path)
}

func (r *Replacement) Synchronize() error { return r.SaveNoupdate() }
