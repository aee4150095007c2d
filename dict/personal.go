package dict

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aspellgo/aspellgo/affix"
	"github.com/aspellgo/aspellgo/lang"
)

// personalHeader is the versioned header line:
// "personal_ws-1.1 <lang> <count> <encoding>".
const personalHeader = "personal_ws-1.1"

// Personal is the writable personal dictionary: a hash table from clean
// form to a bag of stored surface forms, persisted as a line-oriented text
// file.
type Personal struct {
	unsupported

	mu       sync.Mutex
	path     string
	l        *lang.Language
	encoding string

	byClean      map[string][]string
	bySoundslike map[string][]string // only populated when l.Soundslike is not "none"

	loadedModTime time.Time
}

// NewPersonal creates an empty, unsaved personal dictionary for l.
func NewPersonal(path string, l *lang.Language, encoding string) *Personal {
	return &Personal{
		path:         path,
		l:            l,
		encoding:     encoding,
		byClean:      make(map[string][]string),
		bySoundslike: make(map[string][]string),
	}
}

// LoadPersonal reads an existing personal_ws-1.1 file.
func LoadPersonal(path string, l *lang.Language) (*Personal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cant_read_file: %w", err)
	}
	defer f.Close()
	st, _ := f.Stat()

	p := NewPersonal(path, l, "utf-8")
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return nil, fmt.Errorf("bad_file_format: empty personal dictionary %s", path)
	}
	header := sc.Text()
	fields := strings.Fields(header)
	if len(fields) != 4 || fields[0] != personalHeader {
		return nil, fmt.Errorf("bad_file_format: malformed header %q", header)
	}
	p.encoding = fields[3]

	for sc.Scan() {
		word := unescapePersonalLine(sc.Text())
		if word == "" {
			continue
		}
		p.index(word)
	}
	if st != nil {
		p.loadedModTime = st.ModTime()
	}
	return p, nil
}

func (p *Personal) index(word string) {
	clean := p.l.ToClean(word)
	p.byClean[clean] = append(p.byClean[clean], word)
	if p.l.Soundslike.Name() != "none" {
		sl := p.l.Soundslike.ToSoundslike(word)
		p.bySoundslike[sl] = append(p.bySoundslike[sl], word)
	}
}

func (p *Personal) Name() string             { return p.path }
func (p *Personal) Language() *lang.Language { return p.l }
func (p *Personal) SupportedFlags() Flags    { return Flags{} }

func (p *Personal) Lookup(word string, cmp SensitiveCompare) (*WordEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	clean := p.l.ToClean(word)
	for _, w := range p.byClean[clean] {
		if cmp.Equal(word, w) {
			return &WordEntry{Text: w, Kind: Word, Info: p.l.GetWordInfo(w)}, nil
		}
	}
	return nil, nil
}

func (p *Personal) CleanLookup(cleanForm string) (*WordEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	words := p.byClean[cleanForm]
	if len(words) == 0 {
		return nil, nil
	}
	return &WordEntry{Text: words[0], Kind: Clean, Info: p.l.GetWordInfo(words[0])}, nil
}

func (p *Personal) SoundslikeLookup(key string) (*WordEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	words := p.bySoundslike[key]
	if len(words) == 0 {
		return nil, nil
	}
	return &WordEntry{Text: words[0], Kind: Soundslike, Info: p.l.GetWordInfo(words[0])}, nil
}

// Add implements the mutation contract: validation failure is
// fatal to this Add only, leaving in-memory state unchanged.
func (p *Personal) Add(word string) error {
	if err := p.l.ValidateWord(word); err != nil {
		return fmt.Errorf("invalid_word: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index(word)
	return nil
}

// AddAffixed adds word to the personal dictionary after validating each of
// flags against the language's affix table, the way aspell validates a
// personal-dictionary entry carrying "word/FLAGS" at insert time. A flag
// the affix table reports as anything other than ValidAffix rejects the
// whole add, leaving in-memory state unchanged, same as a plain Add
// rejected by ValidateWord.
func (p *Personal) AddAffixed(word string, flags []byte) error {
	if p.l.Affix == nil {
		return fmt.Errorf("invalid_affix: %s has no affix table configured", p.l.Name)
	}
	for _, flag := range flags {
		status, err := p.l.Affix.CheckAffix(word, flag)
		if err != nil {
			return fmt.Errorf("invalid_affix: flag %q: %w", flag, err)
		}
		if status != affix.ValidAffix {
			return fmt.Errorf("%s: flag %q does not apply to %q", status, flag, word)
		}
	}
	return p.Add(word)
}

func (p *Personal) AddWithSoundslike(word, soundslike string) error {
	if err := p.l.ValidateWord(word); err != nil {
		return fmt.Errorf("invalid_word: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	clean := p.l.ToClean(word)
	p.byClean[clean] = append(p.byClean[clean], word)
	p.bySoundslike[soundslike] = append(p.bySoundslike[soundslike], word)
	return nil
}

func (p *Personal) Remove(word string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	clean := p.l.ToClean(word)
	p.byClean[clean] = removeString(p.byClean[clean], word)
	if len(p.byClean[clean]) == 0 {
		delete(p.byClean, clean)
	}
	return nil
}

func removeString(ss []string, target string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func (p *Personal) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byClean = make(map[string][]string)
	p.bySoundslike = make(map[string][]string)
	return nil
}

func (p *Personal) Elements() func(func(*WordEntry) bool) {
	p.mu.Lock()
	words := p.snapshot()
	p.mu.Unlock()
	return func(yield func(*WordEntry) bool) {
		for _, w := range words {
			if !yield(&WordEntry{Text: w, Kind: Word, Info: p.l.GetWordInfo(w)}) {
				return
			}
		}
	}
}
func (p *Personal) DetailedElements() func(func(*WordEntry) bool) { return p.Elements() }

func (p *Personal) snapshot() []string {
	var out []string
	for _, words := range p.byClean {
		out = append(out, words...)
	}
	return out
}

// SaveNoupdate implements the save operation: acquire a write
// lock on the target file, merge any changes made on disk since the last
// load (detected by modification time), write the result to "<path>.tmp"
// and rename it over the file, then record the new modification time. A
// failure before the rename leaves the previous file unchanged.
func (p *Personal) SaveNoupdate() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	unlock, err := acquireFileLock(p.path)
	if err != nil {
		return fmt.Errorf("cant_write_file: %w", err)
	}
	defer unlock()

	if err := p.mergeConcurrentDiskChanges(); err != nil {
		return err
	}

	tmp := p.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cant_write_file: %w", err)
	}

	words := p.snapshot()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s %s %d %s\n", personalHeader, p.l.Name, len(words), p.encoding)
	for _, word := range words {
		fmt.Fprintln(w, escapePersonalLine(word))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("cant_write_file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cant_write_file: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("cant_write_file: %w", err)
	}
	if st, err := os.Stat(p.path); err == nil {
		p.loadedModTime = st.ModTime()
	}
	return nil
}

// Synchronize re-merges disk state and writes it back; for Personal this is
// the same operation as SaveNoupdate since there is no separate in-memory
// "pending update" queue to flush.
func (p *Personal) Synchronize() error { return p.SaveNoupdate() }

// mergeConcurrentDiskChanges re-reads the on-disk file if its modification
// time is newer than the one observed at load, folding any words it added
// into the in-memory index before this process's own save overwrites it.
func (p *Personal) mergeConcurrentDiskChanges() error {
	st, err := os.Stat(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cant_read_file: %w", err)
	}
	if !st.ModTime().After(p.loadedModTime) {
		return nil
	}
	other, err := LoadPersonal(p.path, p.l)
	if err != nil {
		return err
	}
	for clean, words := range other.byClean {
		existing := make(map[string]bool, len(p.byClean[clean]))
		for _, w := range p.byClean[clean] {
			existing[w] = true
		}
		for _, w := range words {
			if !existing[w] {
				p.byClean[clean] = append(p.byClean[clean], w)
			}
		}
	}
	p.loadedModTime = st.ModTime()
	return nil
}

func escapePersonalLine(word string) string {
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	return r.Replace(word)
}

func unescapePersonalLine(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i+1 < len(line) {
			i++
			switch line[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(line[i])
			}
			continue
		}
		b.WriteByte(line[i])
	}
	return strings.TrimSpace(b.String())
}
