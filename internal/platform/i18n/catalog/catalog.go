// Package catalog loads the embedded YAML message catalogs and registers them
// with golang.org/x/text/message.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog is checked against.
const BaseLocale = "en-US"

// corePrefix marks keys shared by every page; they live in core.yaml.
const corePrefix = "core."

// file is one locales/<locale>/<namespace>.yaml document.
type file struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds the flattened messages of every locale.
type Bundle struct {
	messages   map[string]map[string]string
	namespaces map[string]map[string]bool
}

//go:embed locales/*/*.yaml
var embedded embed.FS

var embeddedBundle = mustRegister(embedded)

// Tags returns the locales of the embedded catalogs, base locale first.
func Tags() []language.Tag {
	return embeddedBundle.Tags()
}

// Load reads every locales/<locale>/<namespace>.yaml file in fsys. Each locale
// must define the same keys as the base locale.
func Load(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{
		messages:   map[string]map[string]string{},
		namespaces: map[string]map[string]bool{},
	}
	for _, name := range paths {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", name, err)
		}
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", name, err)
		}
		if err := b.add(name, f); err != nil {
			return nil, err
		}
	}
	if err := b.checkParity(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) add(name string, f file) error {
	locale := strings.TrimSpace(f.Locale)
	if want := path.Base(path.Dir(name)); locale != want {
		return fmt.Errorf("catalog %s: locale %q does not match directory %q", name, locale, want)
	}
	namespace := strings.TrimSpace(f.Namespace)
	if want := strings.TrimSuffix(path.Base(name), path.Ext(name)); namespace != want {
		return fmt.Errorf("catalog %s: namespace %q does not match file name %q", name, namespace, want)
	}
	if len(f.Messages) == 0 {
		return fmt.Errorf("catalog %s: no messages", name)
	}

	if b.namespaces[locale] == nil {
		b.namespaces[locale] = map[string]bool{}
		b.messages[locale] = map[string]string{}
	}
	if b.namespaces[locale][namespace] {
		return fmt.Errorf("catalog %s: namespace %q repeated for %s", name, namespace, locale)
	}
	b.namespaces[locale][namespace] = true

	msgs := b.messages[locale]
	for key, value := range f.Messages {
		key = strings.TrimSpace(key)
		switch {
		case key == "":
			return fmt.Errorf("catalog %s: blank message key", name)
		case strings.HasPrefix(key, corePrefix) && namespace != "core":
			return fmt.Errorf("catalog %s: %q belongs in the core namespace", name, key)
		}
		if _, dup := msgs[key]; dup {
			return fmt.Errorf("catalog %s: key %q repeated for %s", name, key, locale)
		}
		msgs[key] = value
	}
	return nil
}

// checkParity requires the base locale and the same key set in every locale.
func (b *Bundle) checkParity() error {
	base, ok := b.messages[BaseLocale]
	if !ok {
		return fmt.Errorf("base locale %s has no catalogs", BaseLocale)
	}
	for locale, msgs := range b.messages {
		for key := range base {
			if _, ok := msgs[key]; !ok {
				return fmt.Errorf("locale %s is missing %q", locale, key)
			}
		}
		if len(msgs) != len(base) {
			return fmt.Errorf("locale %s defines keys unknown to %s", locale, BaseLocale)
		}
	}
	return nil
}

// Tags returns the bundle's locales, base locale first and the rest sorted.
func (b *Bundle) Tags() []language.Tag {
	if b == nil {
		return nil
	}
	locales := make([]string, 0, len(b.messages))
	for locale := range b.messages {
		if locale != BaseLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)

	tags := []language.Tag{language.MustParse(BaseLocale)}
	for _, locale := range locales {
		tags = append(tags, language.MustParse(locale))
	}
	return tags
}

// Register sets every message on the x/text catalog, under the full tag and
// its base language so "da" resolves like "da-DK".
func (b *Bundle) Register() error {
	for locale, msgs := range b.messages {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if short := language.Make(base.String()); short != tag {
				tags = append(tags, short)
			}
		}
		for key, value := range msgs {
			for _, t := range tags {
				if err := message.SetString(t, key, value); err != nil {
					return fmt.Errorf("register %s %q: %w", t, key, err)
				}
			}
		}
	}
	return nil
}

func mustRegister(fsys fs.FS) *Bundle {
	b, err := Load(fsys)
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}
