package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fla4sh/redirectscope/internal/banner"
	"github.com/fla4sh/redirectscope/internal/httpclient"
	"github.com/fla4sh/redirectscope/internal/model"
	"github.com/fla4sh/redirectscope/internal/report"
	"github.com/fla4sh/redirectscope/internal/resolver"
	"github.com/fla4sh/redirectscope/internal/runner"
)

// defaultUserAgent avoids servers that reject Go's default client UA.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type options struct {
	output           string
	sameDomainOutput string
	invalidOutput    string
	validOutput      string
	jsonlOutput      string
	htmlOutput       string
	threads          int
	maxRedirects     int
	timeout          int
	rateLimit        int
	proxy            string
	insecure         bool
	verbose          bool
	silent           bool
}

func main() {
	logger := newLogger()
	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
}

func newRootCmd(logger zerolog.Logger) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "redirectscope <input-file>",
		Short:         "Check and categorize URL redirects concurrently",
		Long:          "Reads a newline-delimited URL list, follows HTTP redirects for each URL\nconcurrently and writes per-category report files.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(logger, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "redirected_domains.txt", "Output file for new domain redirects")
	f.StringVarP(&opts.sameDomainOutput, "same-domain-output", "s", "same_domain_redirects.txt", "Output file for same domain redirects")
	f.StringVarP(&opts.invalidOutput, "invalid-output", "x", "invalid_or_failed.txt", "Output file for invalid or failed URLs")
	f.StringVarP(&opts.validOutput, "valid-output", "v", "valid_redirects.txt", "Output file for cross-domain redirects (duplicates --output, kept for compatibility)")
	f.StringVar(&opts.jsonlOutput, "jsonl", "", "Optional JSONL file with every result")
	f.StringVar(&opts.htmlOutput, "html", "", "Optional HTML report file")
	f.IntVarP(&opts.threads, "threads", "t", 20, "Number of worker threads")
	f.IntVarP(&opts.maxRedirects, "redirects", "r", 10, "Maximum number of redirects to follow")
	f.IntVar(&opts.timeout, "timeout", 10, "Request timeout in seconds")
	f.IntVar(&opts.rateLimit, "rate", 0, "Global rate limit in requests per second (0 = unlimited)")
	f.StringVar(&opts.proxy, "proxy", "", "HTTP(S) proxy URL")
	f.BoolVar(&opts.insecure, "insecure", false, "Skip TLS certificate verification")
	f.BoolVarP(&opts.verbose, "verbose", "V", false, "Print every result to stdout as it arrives")
	f.BoolVar(&opts.silent, "silent", false, "Suppress banner and progress output")
	return cmd
}

func run(logger zerolog.Logger, inputFile string, opts options) error {
	if err := validate(opts); err != nil {
		return err
	}
	if !opts.silent {
		banner.Print()
	}

	urls, err := loadURLs(inputFile)
	if err != nil {
		logger.Error().Str("file", inputFile).Err(err).Msg("cannot read input file")
		return err
	}
	if len(urls) == 0 {
		logger.Warn().Str("file", inputFile).Msg("input file contains no URLs")
		return nil
	}
	logger.Info().Int("urls", len(urls)).Int("threads", opts.threads).
		Int("max_redirects", opts.maxRedirects).Int("timeout_s", opts.timeout).
		Msg("starting run")

	var proxyFunc func(*http.Request) (*url.URL, error)
	if opts.proxy != "" {
		proxyURL, perr := url.Parse(opts.proxy)
		if perr != nil {
			return fmt.Errorf("invalid proxy URL: %w", perr)
		}
		proxyFunc = http.ProxyURL(proxyURL)
	}

	client := httpclient.New(httpclient.Config{
		Timeout:   time.Duration(opts.timeout) * time.Second,
		Proxy:     proxyFunc,
		UserAgent: defaultUserAgent,
		Insecure:  opts.insecure,
	})
	res := resolver.New(client, opts.maxRedirects)

	runCfg := runner.Config{Threads: opts.threads, RateLimit: opts.rateLimit}
	showProgress := !opts.silent && !opts.verbose && isatty.IsTerminal(os.Stderr.Fd())
	done := 0
	total := len(urls)
	if opts.verbose || showProgress {
		// OnResult invocations are serialized by the runner.
		runCfg.OnResult = func(r model.ClassifiedResult) {
			done++
			if opts.verbose {
				report.PrintResult(os.Stdout, r)
				return
			}
			fmt.Fprintf(os.Stderr, "\rProcessing URLs: %d/%d", done, total)
		}
	}

	results := runner.New(runCfg, res).Run(context.Background(), urls)
	if showProgress {
		fmt.Fprintln(os.Stderr)
	}

	paths := report.Paths{
		NewDomain:  opts.output,
		SameDomain: opts.sameDomainOutput,
		Invalid:    opts.invalidOutput,
		Valid:      opts.validOutput,
	}
	for _, p := range []string{opts.output, opts.sameDomainOutput, opts.invalidOutput, opts.validOutput, opts.jsonlOutput, opts.htmlOutput} {
		if err := ensureDir(p); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := report.WriteFiles(results, paths); err != nil {
		return err
	}
	if opts.jsonlOutput != "" {
		if err := writeJSONLFile(opts.jsonlOutput, results); err != nil {
			return err
		}
	}
	if opts.htmlOutput != "" {
		if err := writeHTMLFile(opts.htmlOutput, results); err != nil {
			return err
		}
	}

	sum := report.Summarize(results)
	if !opts.silent {
		report.PrintSummary(os.Stdout, sum)
	}
	logger.Info().
		Int("no_redirect", sum.NoRedirect).
		Int("same_domain", sum.SameDomain).
		Int("new_domain", sum.NewDomain).
		Int("invalid", sum.Invalid).
		Msg("run complete")
	logger.Info().
		Str("new_domain", opts.output).
		Str("same_domain", opts.sameDomainOutput).
		Str("invalid", opts.invalidOutput).
		Str("valid", opts.validOutput).
		Msg("results written")
	return nil
}

func validate(opts options) error {
	if opts.threads <= 0 {
		return fmt.Errorf("--threads must be greater than zero (got %d)", opts.threads)
	}
	if opts.maxRedirects < 0 {
		return fmt.Errorf("--redirects must be >= 0 (got %d)", opts.maxRedirects)
	}
	if opts.timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0 (got %d)", opts.timeout)
	}
	if opts.rateLimit < 0 {
		return fmt.Errorf("--rate must be >= 0 (got %d)", opts.rateLimit)
	}
	if opts.output == "" || opts.sameDomainOutput == "" || opts.invalidOutput == "" || opts.validOutput == "" {
		return errors.New("output file paths must not be empty")
	}
	return nil
}

// loadURLs reads a newline-delimited URL list; blank lines are ignored.
func loadURLs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	var urls []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return urls, nil
}

func writeJSONLFile(path string, results []model.ClassifiedResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create JSONL file: %w", err)
	}
	defer f.Close()
	if err := report.WriteJSONL(f, results); err != nil {
		return fmt.Errorf("write JSONL: %w", err)
	}
	return nil
}

func writeHTMLFile(path string, results []model.ClassifiedResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create HTML file: %w", err)
	}
	defer f.Close()
	if err := report.WriteHTML(f, results); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
