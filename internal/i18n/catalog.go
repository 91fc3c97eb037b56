// Package i18n holds the localized message tables for every list page.
//
// Tables are YAML files under locales/<locale>/<namespace>.yaml. The locale
// set is open: dropping a new directory in adds a language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"malladmin/internal/core/apperror"
	"malladmin/pkg/logger"
)

// DefaultLocale is used when a request names no locale or an unknown one.
const DefaultLocale = "en"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// LocaleTable stores all messages for one locale, grouped by namespace.
type LocaleTable struct {
	Locale     string
	Tag        language.Tag
	Namespaces map[string]map[string]string
	Messages   map[string]string
}

// Catalog resolves message keys per locale.
type Catalog struct {
	locales  map[string]*LocaleTable
	names    []string
	tags     []language.Tag
	matcher  language.Matcher
	builder  *catalog.Builder
	fallback string
	log      *logger.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for missing-key warnings.
func WithLogger(l *logger.Logger) Option {
	return func(c *Catalog) { c.log = l.WithComponent("i18n") }
}

// WithFallbackLocale sets the locale Match falls back to.
func WithFallbackLocale(locale string) Option {
	return func(c *Catalog) { c.fallback = locale }
}

// LoadEmbedded loads the tables shipped with the binary.
func LoadEmbedded(opts ...Option) (*Catalog, error) {
	return Load(embeddedFS, opts...)
}

// Load reads every locales/*/*.yaml file from fsys.
func Load(fsys fs.FS, opts ...Option) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale tables: %w", err)
	}
	if len(paths) == 0 {
		return nil, apperror.NewConfiguration("no locale tables found")
	}
	sort.Strings(paths)

	c := &Catalog{
		locales:  make(map[string]*LocaleTable),
		fallback: DefaultLocale,
		log:      logger.Default().WithComponent("i18n"),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale table %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, apperror.NewConfiguration(fmt.Sprintf("parse locale table %s", p)).WithCause(err)
		}
		if err := c.addFile(p, file); err != nil {
			return nil, err
		}
	}

	if err := c.build(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	if locale != localeFromPath {
		return apperror.NewConfiguration(fmt.Sprintf("locale table %s: locale %q must match directory %q", p, locale, localeFromPath))
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace != namespaceFromPath {
		return apperror.NewConfiguration(fmt.Sprintf("locale table %s: namespace %q must match file name %q", p, namespace, namespaceFromPath))
	}
	if len(file.Messages) == 0 {
		return apperror.NewConfiguration(fmt.Sprintf("locale table %s: no messages", p))
	}

	table, ok := c.locales[locale]
	if !ok {
		tag, err := language.Parse(locale)
		if err != nil {
			return apperror.NewConfiguration(fmt.Sprintf("locale table %s: bad locale tag %q", p, locale)).WithCause(err)
		}
		table = &LocaleTable{
			Locale:     locale,
			Tag:        tag,
			Namespaces: make(map[string]map[string]string),
			Messages:   make(map[string]string),
		}
		c.locales[locale] = table
	}

	nsMessages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return apperror.NewConfiguration(fmt.Sprintf("locale table %s: blank key", p))
		}
		// entity namespaces own their prefix, shared keys live in core
		if namespace != "core" && !strings.HasPrefix(key, namespace+".") {
			return apperror.NewConfiguration(fmt.Sprintf("locale table %s: key %q outside namespace %q", p, key, namespace))
		}
		if _, dup := table.Messages[key]; dup {
			return apperror.NewConfiguration(fmt.Sprintf("locale table %s: duplicate key %q in locale %q", p, key, locale))
		}
		table.Messages[key] = value
		nsMessages[key] = value
	}
	table.Namespaces[namespace] = nsMessages
	return nil
}

// build prepares the x/text catalog and Accept-Language matcher.
func (c *Catalog) build() error {
	c.names = make([]string, 0, len(c.locales))
	for name := range c.locales {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)

	// the fallback goes first so the matcher prefers it on ties
	sort.SliceStable(c.names, func(i, j int) bool {
		return c.names[i] == c.fallback && c.names[j] != c.fallback
	})

	fallbackTag := language.English
	if t, ok := c.locales[c.fallback]; ok {
		fallbackTag = t.Tag
	}
	c.builder = catalog.NewBuilder(catalog.Fallback(fallbackTag))
	c.tags = make([]language.Tag, 0, len(c.names))

	for _, name := range c.names {
		table := c.locales[name]
		c.tags = append(c.tags, table.Tag)
		for key, msg := range table.Messages {
			if err := c.builder.SetString(table.Tag, key, msg); err != nil {
				return apperror.NewConfiguration(fmt.Sprintf("register %s/%s", name, key)).WithCause(err)
			}
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return nil
}

// Locales returns the loaded locale identifiers, fallback first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// HasLocale reports whether the locale exists in this catalog.
func (c *Catalog) HasLocale(locale string) bool {
	_, ok := c.locales[strings.TrimSpace(locale)]
	return ok
}

// table finds the table for a locale: exact first, then its base language (hi-IN -> hi).
func (c *Catalog) table(locale string) *LocaleTable {
	locale = strings.TrimSpace(locale)
	if t, ok := c.locales[locale]; ok {
		return t
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil
	}
	base, _ := tag.Base()
	return c.locales[base.String()]
}

// Lookup returns a message without any fallback to the key.
func (c *Catalog) Lookup(locale, key string) (string, bool) {
	t := c.table(locale)
	if t == nil {
		return "", false
	}
	msg, ok := t.Messages[key]
	return msg, ok
}

// Resolve returns the message for key in locale. A missing entry yields the
// key itself and a warning; it never fails.
func (c *Catalog) Resolve(locale, key string) string {
	if msg, ok := c.Lookup(locale, key); ok {
		return msg
	}
	c.log.Warnw("missing translation", "locale", locale, "key", key)
	return key
}

// Format resolves key and applies printf-style args with locale-aware
// number formatting. Messages may reorder args (%[2]d).
func (c *Catalog) Format(locale, key string, args ...any) string {
	if _, ok := c.Lookup(locale, key); !ok {
		c.log.Warnw("missing translation", "locale", locale, "key", key)
		return key
	}
	return c.Printer(locale).Sprintf(key, args...)
}

// Printer returns an x/text printer bound to the locale's tables.
func (c *Catalog) Printer(locale string) *message.Printer {
	tag := language.English
	if t := c.table(locale); t != nil {
		tag = t.Tag
	} else if t, ok := c.locales[c.fallback]; ok {
		tag = t.Tag
	}
	return message.NewPrinter(tag, message.Catalog(c.builder))
}

// Match picks the best loaded locale for an Accept-Language header value.
func (c *Catalog) Match(acceptLanguage string) string {
	if len(c.names) == 0 {
		return c.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.fallback
	}
	return c.names[idx]
}

// Verify checks that every key exists in every loaded locale and reports
// all gaps at once.
func (c *Catalog) Verify(keys []string) error {
	var missing []string
	for _, name := range c.names {
		table := c.locales[name]
		for _, key := range keys {
			if _, ok := table.Messages[key]; !ok {
				missing = append(missing, name+":"+key)
			}
		}
	}
	if len(missing) > 0 {
		return apperror.NewConfiguration(fmt.Sprintf("%d translations missing", len(missing))).
			WithDetail("missing", missing)
	}
	return nil
}
