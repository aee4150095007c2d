package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/aspellgo/aspellgo/aspellcfg"
	"github.com/aspellgo/aspellgo/checker"
	"github.com/aspellgo/aspellgo/convert"
	"github.com/aspellgo/aspellgo/data"
	"github.com/aspellgo/aspellgo/dict"
	"github.com/aspellgo/aspellgo/filter"
	"github.com/aspellgo/aspellgo/internal/cache"
	"github.com/aspellgo/aspellgo/lang"
	"github.com/aspellgo/aspellgo/speller"
)

// engine bundles the objects a CLI command needs to check or correct text:
// the assembled Checker plus the Coordinator it delegates spelling
// decisions to, so a command can also drive AddToPersonal directly. It also
// holds the cache handles acquired while assembling those objects, so Close
// can release them symmetrically.
type engine struct {
	cfg *aspellcfg.Config
	lng *lang.Language
	sp  *speller.Coordinator
	chk *checker.Checker

	langHandle cache.Handle
	normHandle cache.Handle
	dictHandle cache.Handle
}

// Close releases every cache handle newEngine acquired. It is safe to call
// on a nil engine.
func (e *engine) Close() {
	if e == nil {
		return
	}
	lang.Cache.Release(e.langHandle)
	convert.NormCache.Release(e.normHandle)
	dict.DictCache.Release(e.dictHandle)
}

// newEngine wires aspellcfg, lang, affix, dict, filter, speller, and
// checker together from flag/viper state: config load, then construct
// each collaborator off of it in dependency order.
func newEngine() (*engine, error) {
	cfg := aspellcfg.New()
	if v := viper.GetString("lang"); v != "" {
		cfg.SetString("lang", v)
	}
	if v := viper.GetString("encoding"); v != "" {
		cfg.SetString("encoding", v)
	}
	if v := viper.GetStringSlice("filter"); len(v) > 0 {
		cfg.SetList("filter", v)
	}
	if viper.GetBool("run-together") {
		cfg.SetBool("run-together", true)
	}
	if v := viper.GetString("personal"); v != "" {
		cfg.SetString("personal", v)
	}
	if conf := viper.GetString("conf"); conf != "" {
		if err := cfg.ApplyConfString(conf); err != nil {
			return nil, fmt.Errorf("bad_value: --conf: %w", err)
		}
	}

	langName := cfg.String("lang")
	if langName != "en" {
		return nil, fmt.Errorf("no_wordlist_for_lang: only \"en\" is bundled, got %q", langName)
	}

	langHandle, l, err := lang.OpenCached(langName, func() (*lang.Language, error) {
		return lang.Setup(lang.Bundle{Dat: data.EnLang, Charset: data.EnCharset, Phonet: data.EnPhonet, Affix: data.EnAffix})
	})
	if err != nil {
		return nil, fmt.Errorf("unknown_lang: %w", err)
	}

	normHandle, norm, err := convert.OpenNormCached(l.Charset, func() (*convert.Table, error) {
		return convert.ParseTable(data.EnCmap)
	})
	if err != nil {
		lang.Cache.Release(langHandle)
		return nil, fmt.Errorf("bad_file_format: parsing normalization map: %w", err)
	}

	encName := cfg.String("encoding")
	if encName == "" {
		encName = "utf-8"
	}
	conv := &convert.Pipeline{Lang: l, Norm: norm, FromExternal: encName}

	chain, err := buildFilterChain(cfg.List("filter"))
	if err != nil {
		lang.Cache.Release(langHandle)
		convert.NormCache.Release(normHandle)
		return nil, err
	}

	wordlistPath, err := wordlistFile(cfg)
	if err != nil {
		lang.Cache.Release(langHandle)
		convert.NormCache.Release(normHandle)
		return nil, err
	}

	dictHandle, main, err := dict.OpenReadonlyCached(wordlistPath, func() (dict.Dictionary, error) {
		return dict.NewReadonly(wordlistPath, l, data.EnWordlist)
	})
	if err != nil {
		lang.Cache.Release(langHandle)
		convert.NormCache.Release(normHandle)
		return nil, fmt.Errorf("cant_read_file: loading bundled wordlist: %w", err)
	}

	spCfg := speller.DefaultConfig()
	spCfg.RunTogether = cfg.Bool("run-together")
	spCfg.RunTogetherMin = cfg.Int("run-together-min")
	spCfg.RunTogetherLimit = cfg.Int("run-together-limit")
	spCfg.IgnoreCase = cfg.Bool("ignore-case")
	spCfg.IgnoreAccents = cfg.Bool("ignore-accents")

	coord := speller.New(l, main, l.Affix, spCfg)

	if p := cfg.String("personal"); p != "" {
		if personal, loadErr := dict.LoadPersonal(p, l); loadErr == nil {
			coord.Personal = personal
		} else {
			coord.Personal = dict.NewPersonal(p, l, "utf-8")
		}
	}

	chk := checker.New(l, conv, chain, coord)
	chk.SpanStrings = cfg.Bool("span-strings")

	return &engine{
		cfg: cfg, lng: l, sp: coord, chk: chk,
		langHandle: langHandle, normHandle: normHandle, dictHandle: dictHandle,
	}, nil
}

// wordlistFile materializes the bundled wordlist under the configured data
// directory so OpenReadonlyCached has a real path to stat for a stable
// (dev, inode) cache key instead of falling back to a fresh UUID on every
// call. The file is written once; subsequent calls reuse it.
func wordlistFile(cfg *aspellcfg.Config) (string, error) {
	dir := cfg.String("data-dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cant_write_file: creating data dir: %w", err)
	}
	path := filepath.Join(dir, "en.wl")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("cant_read_file: %w", err)
	}
	if err := os.WriteFile(path, data.EnWordlist, 0o644); err != nil {
		return "", fmt.Errorf("cant_write_file: %w", err)
	}
	return path, nil
}

// buildFilterChain installs the named filter modes via the same
// Registry.Build path a config-driven filter list would use.
func buildFilterChain(names []string) (*filter.Chain, error) {
	chain := filter.New()
	if len(names) == 0 {
		return chain, nil
	}
	reg := filter.DefaultRegistry()

	for _, name := range names {
		var filterNames []string
		switch name {
		case "tex":
			filterNames = []string{"tex-comment"}
		case "html":
			filterNames = []string{"html-tag"}
		default:
			return nil, fmt.Errorf("%w: %q", filter.ErrNoSuchFilter, name)
		}
		d := &filter.ModeDescriptor{Name: name, Filters: filterNames, Options: map[string]string{}}
		if err := reg.Build(chain, d); err != nil {
			return nil, err
		}
	}
	return chain, nil
}
