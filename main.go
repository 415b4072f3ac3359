package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"treedata/internal/model"
	"treedata/internal/report"
	"treedata/internal/repl"
	"treedata/internal/tree"
	"treedata/internal/tui"
	"treedata/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

// releaseSource is where --update looks for newer tags.
var releaseSource latest.Source = &latest.GithubTag{
	Owner:      "treedata",
	Repository: "treedata",
}

func checkUpdate(w io.Writer, src latest.Source, currentVer string) error {
	res, err := latest.Check(src, currentVer)
	if err != nil {
		fmt.Fprintf(w, "Could not check for updates: %v\n", err)
		fmt.Fprintf(w, "You are using treedata %s.\n", currentVer)
		return err
	}

	if res.Outdated {
		fmt.Fprintf(w, "\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else {
		fmt.Fprintf(w, "✅ You are using the latest version: %s\n", currentVer)
	}
	return nil
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: treedata [options] [FILE]\n\n")
		fmt.Fprintf(os.Stderr, "treedata reads a file of parent|name lines into a tree and answers\n")
		fmt.Fprintf(os.Stderr, "queries over it: the tree, its leaves, its lowest nodes, and lookups\n")
		fmt.Fprintf(os.Stderr, "by node name or by parent name. FILE defaults to %s.\n\n", model.DefaultFile)
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  treedata                 # Interactive prompt over data.txt\n")
		fmt.Fprintf(os.Stderr, "  treedata -f org.txt -t   # Full-screen view of org.txt\n")
		fmt.Fprintf(os.Stderr, "  treedata --report org.txt\n")
		fmt.Fprintf(os.Stderr, "  treedata -r -o r.txt org.txt  # Save report to file\n")
		fmt.Fprintf(os.Stderr, "  cat org.txt | treedata -f - --json\n")
	}

	fileFlag := pflag.StringP("file", "f", "", "Input file (\"-\" reads standard input)")
	strictFlag := pflag.BoolP("strict", "s", false, "Fail when a parent name does not appear on an earlier line")
	markerFlag := pflag.StringP("marker", "m", tree.DefaultMarker, "Indent marker for the tree display")
	reportFlag := pflag.BoolP("report", "r", false, "Print every query result and exit")
	jsonFlag := pflag.BoolP("json", "j", false, "Print every query result as JSON and exit")
	outputFlag := pflag.StringP("output", "o", "", "Save the --report or --json output to the specified file")
	tuiFlag := pflag.BoolP("tui", "t", false, "Start the full-screen interactive view")
	webFlag := pflag.BoolP("web", "w", false, "Serve the JSON API (see --addr)")
	addrFlag := pflag.String("addr", ":8080", "Listen address for --web")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Log debug details to stderr")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for a newer release")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("treedata version %s\n", model.Version)
		return
	}

	if *updateFlag {
		if err := checkUpdate(os.Stdout, releaseSource, model.Version); err != nil {
			os.Exit(1)
		}
		return
	}

	path, err := inputPath(*fileFlag, pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		pflag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if path != "-" {
		path = model.ExpandTilde(path)
		if err := tree.CheckFile(path); err != nil {
			log.Debug("input check failed", "error", err)
			fmt.Fprintf(os.Stderr, "File {%s} is not valid\n", path)
			os.Exit(1)
		}
	}

	ix := tree.New(path,
		tree.WithStrict(*strictFlag),
		tree.WithMarker(*markerFlag),
		tree.WithLogger(log),
	)

	if *tuiFlag {
		runTuiMode(ix)
		return
	}

	view := mustLoad(ix)

	switch {
	case *webFlag:
		runWebMode(*addrFlag, view, path, log)
	case *reportFlag:
		res := model.Analyze(path, view)
		runOutputMode(*outputFlag, func(w io.Writer) error {
			return writeReport(w, res, *verboseFlag)
		})
	case *jsonFlag:
		res := model.Analyze(path, view)
		runOutputMode(*outputFlag, func(w io.Writer) error {
			return writeJSON(w, res)
		})
	default:
		runReplMode(view, log)
	}
}

// inputPath picks the file from --file or the single positional argument.
func inputPath(fileFlag string, args []string) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("expected at most one FILE, got %d", len(args))
	case len(args) == 1 && fileFlag != "":
		return "", errors.New("give FILE either as an argument or with --file, not both")
	case len(args) == 1:
		return args[0], nil
	case fileFlag != "":
		return fileFlag, nil
	}
	return model.DefaultFile, nil
}

func mustLoad(ix *tree.Index) *tree.View {
	var err error
	if ix.Path() == "-" {
		err = ix.LoadFrom(os.Stdin)
	} else {
		err = ix.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", ix.Path(), err)
		var malformed *tree.MalformedLineError
		if errors.As(err, &malformed) && ix.Path() != "-" {
			fmt.Fprint(os.Stderr, model.GetLineContext(ix.Path(), malformed.Line, 2).String())
		}
		os.Exit(1)
	}

	view, err := ix.View()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return view
}

func writeReport(w io.Writer, res model.QueryResult, verbose bool) error {
	_, err := io.WriteString(w, report.GenerateReport(res, verbose))
	return err
}

func writeJSON(w io.Writer, res model.QueryResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// saveOutput runs write against stdout, or against outputFile when set.
func saveOutput(stdout io.Writer, outputFile string, write func(io.Writer) error) error {
	if outputFile == "" {
		return write(stdout)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Report saved to %s\n", outputFile)
	return nil
}

func runOutputMode(outputFile string, write func(io.Writer) error) {
	if err := saveOutput(os.Stdout, outputFile, write); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func runReplMode(view *tree.View, log *slog.Logger) {
	if err := repl.New(view, os.Stdin, os.Stdout, log).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func runWebMode(addr string, view *tree.View, path string, log *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Go to http://localhost%s in your browser.\n", addr)
	if err := web.StartServer(ctx, addr, view, path, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runTuiMode(ix *tree.Index) {
	if ix.Path() == "-" {
		fmt.Fprintln(os.Stderr, "Error: --tui needs a FILE; standard input is used for the keyboard")
		os.Exit(2)
	}
	m := tui.InitialModel(ix)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
