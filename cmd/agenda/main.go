package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
	"pkt.systems/agenda"
	"pkt.systems/agenda/pdf"
	"pkt.systems/version"
)

const (
	defaultLogLevel  = "warn"
	defaultLogFormat = "console"
	stdoutPath       = "-"
)

func init() {
	version.SetDefaultModule("pkt.systems/agenda")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type cliOptions struct {
	output      string
	start       string
	timezone    string
	spacing     float64
	headerSize  float64
	topMargin   float64
	pageNumbers bool
	gridLayer   bool
	themeName   string
	font        string
	title       string
	configPath  string
	logLevel    string
	logFormat   string
	list        bool
	listThemes  bool
	showVersion bool
	changed     func(name string) bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts cliOptions
	defaults := pdf.DefaultConfig()
	flags := pflag.NewFlagSet("agenda", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.output, "output", "o", "", "Output PDF path (default Agenda_<year>.pdf, - for stdout)")
	flags.StringVarP(&opts.start, "start", "s", "", "First day as YYYY-MM-DD (default today)")
	flags.StringVar(&opts.timezone, "timezone", defaults.Timezone, "Time zone used to decide today's date")
	flags.Float64Var(&opts.spacing, "spacing", defaults.GridSpacing, "Grid spacing in points")
	flags.Float64Var(&opts.headerSize, "header-size", defaults.HeaderFontSize, "Header font size in points")
	flags.Float64Var(&opts.topMargin, "top-margin", defaults.TopMargin, "Height of the header band in points")
	flags.BoolVar(&opts.pageNumbers, "page-numbers", defaults.PageNumbers, "Draw page numbers")
	flags.BoolVar(&opts.gridLayer, "grid-layer", false, "Put the grid on a layer that PDF viewers can hide")
	flags.StringVarP(&opts.themeName, "theme", "t", agenda.DefaultTheme().Name(), "Theme name")
	flags.StringVar(&opts.font, "font", "", "TTF font tried before the built-in candidates")
	flags.StringVar(&opts.title, "title", "", "Document title (default Agenda <year>)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: console|json")
	flags.BoolVar(&opts.list, "list", false, "Print the page plan instead of rendering")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: agenda [flags]\n")
		fmt.Fprintln(stderr, "\nRenders one PDF page per day from the start date through December 31.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
		return 2
	}
	opts.changed = flags.Changed

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if opts.listThemes {
		printThemes(stdout)
		return 0
	}

	var file *fileConfig
	if opts.configPath != "" {
		loaded, err := loadConfigFile(normalizePath(opts.configPath))
		if err != nil {
			fmt.Fprintf(stderr, "load config: %v\n", err)
			return 2
		}
		file = loaded
	}

	logger, err := newLogger(logSettings(opts, file))
	if err != nil {
		fmt.Fprintf(stderr, "init logger: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	cfg, output, err := buildConfig(opts, file, agenda.SystemClock)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n\n", err)
		if errors.Is(err, errUnknownTheme) {
			printThemes(stderr)
		}
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 2
	}

	if opts.list {
		printPlan(stdout, agenda.YearRange(cfg.Start), terminalWidth(stdout, defaultListWidth))
		return 0
	}

	req := pdf.RenderRequest{
		Config:  cfg,
		Options: []pdf.Option{pdf.WithLogger(logger)},
	}
	if output == stdoutPath {
		if isTerminal(stdout) {
			fmt.Fprintln(stderr, "refusing to write PDF to terminal; use -o/--output")
			return 2
		}
		req.Writer = stdout
		res, err := pdf.Render(req)
		if err != nil {
			fmt.Fprintf(stderr, "render pdf: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "[DONE] Agenda written to stdout (%d pages)\n", res.Pages)
		return 0
	}

	res, err := pdf.RenderFile(output, req)
	if err != nil {
		fmt.Fprintf(stderr, "render pdf: %v\n", err)
		return 1
	}
	if res.Pages == 0 {
		fmt.Fprintf(stdout, "Nothing to render for %s\n", res.Range)
		return 0
	}
	logger.Info("agenda saved",
		zap.String("path", output),
		zap.Int("pages", res.Pages),
		zap.String("font", res.Font.Family))
	fmt.Fprintf(stdout, "[DONE] Agenda saved to %s\n", output)
	return 0
}

var errUnknownTheme = errors.New("unknown theme")

// buildConfig layers defaults, the config file and explicitly set flags, in
// that order, and pins the start date so the default file name and the
// rendered range agree on the year.
func buildConfig(opts cliOptions, file *fileConfig, clock agenda.Clock) (pdf.Config, string, error) {
	cfg := pdf.DefaultConfig()
	changed := opts.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	output, start, themeName, font := "", "", "", ""
	if file != nil {
		applyFileConfig(&cfg, file)
		output, start, themeName = file.Output, file.Start, file.Theme
		if len(file.Fonts) > 0 {
			candidates := make([]pdf.FontCandidate, 0, len(file.Fonts)+len(cfg.FontCandidates))
			for _, f := range file.Fonts {
				candidates = append(candidates, pdf.FontCandidate{Name: f.Name, Path: normalizePath(f.Path)})
			}
			cfg.FontCandidates = append(candidates, cfg.FontCandidates...)
		}
	}
	if changed("output") {
		output = opts.output
	}
	if changed("start") {
		start = opts.start
	}
	if changed("timezone") {
		cfg.Timezone = opts.timezone
	}
	if changed("spacing") {
		cfg.GridSpacing = opts.spacing
	}
	if changed("header-size") {
		cfg.HeaderFontSize = opts.headerSize
	}
	if changed("top-margin") {
		cfg.TopMargin = opts.topMargin
	}
	if changed("page-numbers") {
		cfg.PageNumbers = opts.pageNumbers
	}
	if changed("grid-layer") {
		cfg.GridLayer = opts.gridLayer
		cfg.OpenLayerPane = opts.gridLayer
	}
	if changed("theme") {
		themeName = opts.themeName
	}
	if changed("font") {
		font = opts.font
	}
	if changed("title") {
		cfg.Title = opts.title
	}

	if themeName != "" {
		theme, ok := agenda.ThemeByName(themeName)
		if !ok {
			return cfg, "", fmt.Errorf("%w %q", errUnknownTheme, themeName)
		}
		cfg.Theme = theme
	}
	if font = strings.TrimSpace(font); font != "" {
		path := normalizePath(font)
		if err := ensureFont(path); err != nil {
			return cfg, "", fmt.Errorf("font %s: %w", font, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		cfg.FontCandidates = append([]pdf.FontCandidate{{Name: name, Path: path}}, cfg.FontCandidates...)
	}

	if start != "" {
		d, err := agenda.ParseDate(start)
		if err != nil {
			return cfg, "", fmt.Errorf("start date: %w", err)
		}
		cfg.Start = d
	} else {
		cfg.Start = agenda.Today(clock, cfg.Timezone)
	}

	if strings.TrimSpace(output) == "" {
		output = defaultOutputPath(cfg.Start)
	} else if output != stdoutPath {
		output = normalizePath(output)
	}
	return cfg, output, nil
}

func defaultOutputPath(start civil.Date) string {
	return "Agenda_" + strconv.Itoa(start.Year) + ".pdf"
}

func printThemes(w io.Writer) {
	for _, name := range agenda.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func ensureFont(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory")
	}
	if !strings.HasSuffix(strings.ToLower(info.Name()), ".ttf") {
		return fmt.Errorf("expected .ttf font file")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}
