package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
	"pkt.systems/version"

	"pkt.systems/quillhtml"
	"pkt.systems/quillhtml/internal/config"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/quillhtml")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		configPath     string
		outPath        string
		block          string
		newline        string
		sanitize       string
		detectBlocks   bool
		rawValues      bool
		strict         bool
		debug          bool
		listAttributes bool
		dumpConfig     bool
		defaultConfig  bool
		showVersion    bool
	)

	flags := pflag.NewFlagSet("quillhtml", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVar(&block, "block", "", "Block container tag (overrides config)")
	flags.StringVar(&newline, "newline", "", "Line-break tag (overrides config)")
	flags.StringVar(&sanitize, "sanitize", "", "Sanitize output: none|ugc|strict (overrides config)")
	flags.BoolVar(&detectBlocks, "detect-blocks", false, "Skip the block wrap when the first/last op already is a block")
	flags.BoolVar(&rawValues, "raw-values", false, "Do not escape insert text and attribute values")
	flags.BoolVar(&strict, "strict", false, "Fail on undecodable input instead of rendering nothing")
	flags.BoolVarP(&debug, "debug", "d", false, "Debug logging to stderr")
	flags.BoolVar(&listAttributes, "list-attributes", false, "List the attribute to tag mapping and exit")
	flags.BoolVar(&dumpConfig, "dump-config", false, "Print the effective configuration and exit")
	flags.BoolVar(&defaultConfig, "default-config", false, "Print the embedded default configuration and exit")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: quillhtml [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nInputs are delta JSON files or http(s)/file URLs; stdin is read if none are given.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	if defaultConfig {
		_, _ = stdout.Write(config.Prepare())
		return 0
	}

	cfg, err := config.LoadConfiguration(normalizeConfigPath(configPath))
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	if flags.Changed("block") {
		cfg.Render.Block = block
	}
	if flags.Changed("newline") {
		cfg.Render.Newline = newline
	}
	if flags.Changed("sanitize") {
		cfg.Render.Sanitize = sanitize
	}
	if flags.Changed("detect-blocks") {
		cfg.Render.DetectBlocks = detectBlocks
	}
	if flags.Changed("raw-values") {
		cfg.Render.RawValues = rawValues
	}
	if flags.Changed("strict") {
		cfg.Render.Strict = strict
	}
	if debug {
		cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid flags: %v\n", err)
		return 2
	}

	log, err := cfg.Logging.Prepare(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	if dumpConfig {
		data, err := config.Dump(cfg)
		if err != nil {
			log.Error("dump config", zap.Error(err))
			return 1
		}
		_, _ = stdout.Write(data)
		return 0
	}

	opts := append(cfg.Render.RenderOptions(), quillhtml.WithLogger(log))

	if listAttributes {
		printAttributes(stdout, quillhtml.ResolveOptions(opts...), outputWidth(stdout))
		return 0
	}

	sources, err := openInputs(flags.Args(), stdin)
	if err != nil {
		log.Error("open input", zap.Error(err))
		return 1
	}

	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		log.Error("open output", zap.String("path", outPath), zap.Error(err))
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	renderer := quillhtml.NewRenderer(opts...)
	for i, src := range sources {
		if i > 0 {
			if _, err := io.WriteString(writer, "\n"); err != nil {
				log.Error("write output", zap.Error(err))
				return 1
			}
		}
		if err := renderSource(renderer, writer, src, cfg.Render.Strict); err != nil {
			log.Error("render", zap.String("input", src.name), zap.Error(err))
			return 1
		}
		log.Debug("rendered", zap.String("input", src.name))
	}
	if isTerminal(writer) {
		_, _ = io.WriteString(writer, "\n")
	}
	return 0
}

func renderSource(r *quillhtml.Renderer, w io.Writer, src inputSource, strict bool) error {
	reader, closer, err := src.open()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	return r.RenderTo(w, reader, strict)
}

func printAttributes(w io.Writer, opts quillhtml.Options, width int) {
	names := make([]string, 0, len(opts.Attributes))
	for name := range opts.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := [][]string{{"ATTRIBUTE", "TAG", "VALUE", "STATIC"}}
	for _, name := range names {
		def := opts.Attributes[name]
		var static []string
		for _, a := range def.Attributes {
			if a.Name == def.Value {
				continue
			}
			static = append(static, a.Name+`="`+a.Value+`"`)
		}
		rows = append(rows, []string{name, def.Tag, def.Value, strings.Join(static, " ")})
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, col := range row {
			if n := ansi.PrintableRuneWidth(col); n > widths[i] {
				widths[i] = n
			}
		}
	}

	fmt.Fprintf(w, "block: %s\nnewline: %s\n\n", opts.Block, opts.Newline)
	for _, row := range rows {
		var b strings.Builder
		for i, col := range row {
			if i == len(row)-1 {
				b.WriteString(col)
				break
			}
			b.WriteString(padding.String(col, uint(widths[i]+2)))
		}
		line := strings.TrimRight(b.String(), " ")
		if width > 0 {
			line = truncate.StringWithTail(line, uint(width), "…")
		}
		fmt.Fprintln(w, line)
	}
}

func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if width, err := strconv.Atoi(value); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

type inputSource struct {
	name string
	open func() (io.Reader, io.Closer, error)
}

func openInputs(args []string, stdin io.Reader) ([]inputSource, error) {
	if len(args) == 0 {
		return []inputSource{{name: "-", open: func() (io.Reader, io.Closer, error) {
			return stdin, nil, nil
		}}}, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw, stdin)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func makeInputSource(raw string, stdin io.Reader) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return inputSource{name: raw, open: func() (io.Reader, io.Closer, error) {
			return stdin, nil, nil
		}}, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{name: raw, open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{name: raw, open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{name: raw, open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizeConfigPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	return normalizePath(path)
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

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
