package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"malladmin/internal/config"
	"malladmin/internal/dialog"
	"malladmin/internal/domain/catalogs"
	"malladmin/internal/form"
	"malladmin/internal/i18n"
	"malladmin/internal/page"
	"malladmin/internal/validation"
	"malladmin/pkg/logger"
)

// app is everything a command needs, built from config.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	site   *page.Site
	locale string
}

func newApp(ctx context.Context, opts *globalOptions, notifier dialog.Notifier) (*app, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	cat, err := i18n.LoadEmbedded(i18n.WithLogger(log), i18n.WithFallbackLocale(cfg.App.Locale))
	if err != nil {
		return nil, err
	}
	locale := cfg.App.Locale
	if opts.locale != "" {
		locale = opts.locale
	}
	if !cat.HasLocale(locale) {
		return nil, fmt.Errorf("unknown locale %q, have %s", locale, strings.Join(cat.Locales(), ", "))
	}

	reg, err := catalogs.NewRegistry()
	if err != nil {
		return nil, err
	}
	engine, err := validation.NewEngine(cat, log)
	if err != nil {
		return nil, err
	}
	if notifier == nil {
		notifier = dialog.LogNotifier{Log: log}
	}

	site, err := page.NewSite(ctx, page.SiteConfig{
		Registry:  reg,
		Seeds:     catalogs.Seeds(),
		Catalog:   cat,
		Validator: engine,
		Committer: form.SimulatedCommitter{Delay: cfg.Form.CommitDelay},
		Notifier:  notifier,
		Logger:    log,
		Overview:  catalogs.Overview(),
	})
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, site: site, locale: locale}, nil
}

// printNotifier writes notices to the command's output.
func printNotifier(w io.Writer) dialog.Notifier {
	return dialog.NotifierFunc(func(_ context.Context, n dialog.Notice) {
		fmt.Fprintln(w, n.Message)
	})
}

// parseSet turns repeated --set key=value flags into draft values.
func parseSet(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("--set expects key=value, got %q", p)
		}
		values[strings.TrimSpace(key)] = value
	}
	return values, nil
}

// kindArg completes the first positional argument with known kinds.
func kindArg(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	kinds := catalogs.Schemas()
	out := make([]string, 0, len(kinds))
	for _, s := range kinds {
		out = append(out, s.Kind)
	}
	sort.Strings(out)
	return out, cobra.ShellCompDirectiveNoFileComp
}
