// Command bitvectorctl runs a batch of access/rank/select queries against a
// bit sequence described by an input file, ported from the original
// reference program's main(): read the query count and the bit string,
// parse every query line up front, build the index, answer every query, and
// emit the replies either to stdout (--console) or to an output file.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/just1developer/bitvector/bitvector"
	"github.com/just1developer/bitvector/internal/query"
)

// exitCode distinguishes the reference program's precise exit codes
// (1 through 5, one per failure mode of main()) from an error that should
// just surface cobra's normal "invalid usage" exit.
type exitCode struct {
	code int
	err  error
}

func (e *exitCode) Error() string { return e.err.Error() }

func newExitCode(code int, err error) error {
	return &exitCode{code: code, err: err}
}

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		var ec *exitCode
		if errors.As(err, &ec) {
			fmt.Fprintln(os.Stderr, ec.err)
			os.Exit(ec.code)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		console  bool
		eval     bool
		logLevel string
		jsonLogs bool
	)

	cmd := &cobra.Command{
		Use:   "bitvectorctl <input-file> [output-file]",
		Short: "Answer access/rank/select queries against a succinct bit vector",
		Long: "bitvectorctl reads a query file containing a query count, a bit " +
			"string, and one query per line, builds a succinct rank/select " +
			"index over the bit string, and writes one reply per query — to " +
			"stdout with --console, or to the given output file otherwise.",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(jsonLogs, logLevel)
			return run(runOptions{
				args:    args,
				console: console,
				eval:    eval,
				logger:  logger,
				stdout:  cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolVar(&console, "console", false, "write replies to stdout instead of an output file")
	cmd.Flags().BoolVar(&eval, "eval", false, "additionally print query-only timing as an EVAL line")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "emit structured JSON logs instead of text")

	return cmd
}

func newLogger(jsonLogs bool, level string) *Logger {
	lvl := parseLevel(level)
	if jsonLogs {
		return NewJSONLogger(lvl)
	}
	return NewTextLogger(lvl)
}

type runOptions struct {
	args    []string
	console bool
	eval    bool
	logger  *Logger
	stdout  interface {
		Write([]byte) (int, error)
	}
}

func run(opts runOptions) error {
	if len(opts.args) < 1 {
		return newExitCode(1, errors.New("please provide an input file as the first argument"))
	}
	inputPath := opts.args[0]

	if !opts.console && len(opts.args) < 2 {
		return newExitCode(2, errors.New("please provide an output file as the second argument, or pass --console"))
	}

	inFile, err := os.Open(inputPath)
	if err != nil {
		return newExitCode(3, errors.Wrapf(err, "could not open file %s", inputPath))
	}
	defer inFile.Close()

	commands, vectorStr, err := readQueryFile(inFile)
	if err != nil {
		return newExitCode(3, err)
	}

	start := time.Now()
	bv := bitvector.New(vectorStr)
	if err := bv.BuildHelpers(); err != nil {
		opts.logger.LogBuild(bv.Len(), 0, 0, err)
		return errors.Wrap(err, "building index")
	}
	queryStart := time.Now()

	replies := make([]uint64, len(commands))
	for i, cmd := range commands {
		replies[i] = evaluate(bv, cmd)
	}

	stop := time.Now()
	buildAndQueryTime := stop.Sub(start)
	queryOnlyTime := stop.Sub(queryStart)
	space := bv.Size()

	opts.logger.LogBuild(bv.Len(), 0, int64(queryStart.Sub(start)), nil)
	opts.logger.LogQueries(len(commands), int64(queryOnlyTime))

	if opts.console {
		w := bufio.NewWriter(opts.stdout)
		for _, r := range replies {
			fmt.Fprintln(w, r)
		}
		w.Flush()
	} else {
		if err := writeReplies(opts.args[1], replies); err != nil {
			return err
		}
	}

	fmt.Fprintf(opts.stdout, "RESULT name=just1developer time=%d space=%d\n", buildAndQueryTime.Milliseconds(), space)
	if opts.eval {
		fmt.Fprintf(opts.stdout, "EVAL query-only-time=%d\n", queryOnlyTime.Nanoseconds())
	}
	return nil
}

// readQueryFile parses the command count, the bit string, and every query
// line, in that order, exactly as main.cpp's main() does.
func readQueryFile(f *os.File) ([]query.Command, string, error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1<<20), 1<<30)

	if !scanner.Scan() {
		return nil, "", errors.New("missing command count line")
	}
	count, err := strconv.ParseUint(scanner.Text(), 10, 64)
	if err != nil {
		return nil, "", errors.Wrap(err, "parsing command count")
	}

	if !scanner.Scan() {
		return nil, "", errors.New("missing bit vector line")
	}
	vectorStr := scanner.Text()

	commands := make([]query.Command, 0, count)
	for i := uint64(0); i < count; i++ {
		if !scanner.Scan() {
			return nil, "", errors.Newf("expected %d queries, got %d", count, i)
		}
		commands = append(commands, query.Parse(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	return commands, vectorStr, nil
}

// evaluate dispatches a single parsed query onto the index.
func evaluate(bv *bitvector.BitVector, cmd query.Command) uint64 {
	switch cmd.Kind {
	case query.KindAccess:
		return uint64(bv.Access(cmd.Position))
	case query.KindRank:
		return bv.Rank(cmd.Position, cmd.BitValue)
	case query.KindSelect:
		return bv.Select(cmd.Position, cmd.BitValue)
	default:
		return 0
	}
}

// writeReplies creates the output file (and its parent directory, if
// needed) and writes one reply per line, mirroring main.cpp's output
// handling including its two distinct failure exit codes.
func writeReplies(path string, replies []uint64) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return newExitCode(5, errors.Wrapf(err, "could not create the directory %s", dir))
			}
		}
	}

	outFile, err := os.Create(path)
	if err != nil {
		return newExitCode(4, errors.Wrapf(err, "could not open the output file %s", path))
	}
	defer outFile.Close()

	w := bufio.NewWriter(outFile)
	for _, r := range replies {
		fmt.Fprintln(w, r)
	}
	if err := w.Flush(); err != nil {
		return newExitCode(4, err)
	}
	return nil
}
