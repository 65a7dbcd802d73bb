/*
Command diac restores diacritics over plain-text input using a trigram
frequency model: for every word missing its accents, it considers the
surrounding two words of context, looks up how often each accented variant
was seen in that context, and picks the most likely one — prompting
interactively when two variants are too close to call.

# Data files

The engine expects three files in -data (default "data/"): words.txt (the
dictionary), offsets.idx (the word-id → model-offset index) and model.bin
(the trigram frequency records). See pkg/dictionary, pkg/offsetindex and
pkg/model for their exact formats.

# Config

Runtime configuration is managed via a config.toml file, supporting
[cache], [conflict] and [model] sections. A default configuration is
created automatically if one does not exist.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vholub/diac/internal/apperr"
	"github.com/vholub/diac/internal/logger"
	"github.com/vholub/diac/internal/utils"
	"github.com/vholub/diac/pkg/binreader"
	"github.com/vholub/diac/pkg/conflict"
	"github.com/vholub/diac/pkg/config"
	"github.com/vholub/diac/pkg/dictionary"
	"github.com/vholub/diac/pkg/model"
	"github.com/vholub/diac/pkg/offsetindex"
	"github.com/vholub/diac/pkg/pagecache"
	"github.com/vholub/diac/pkg/restore"
	"github.com/vholub/diac/pkg/snapshot"
)

const (
	// Version is the engine's release version.
	Version = "0.1.0-beta"
	gh      = "https://github.com/vholub/diac"
)

// sigHandler exits cleanly on SIGINT/SIGTERM, in case a long-running batch
// is interrupted mid-restoration.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main parses flags and dispatches into the library packages; it holds no
// restoration logic of its own.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "config.toml", "Path to config.toml file")
	dataDir := flag.String("data", "data/", "Directory containing words.txt, offsets.idx, model.bin")
	inputPath := flag.String("i", "", "Input file to restore (default: stdin)")
	outputPath := flag.String("o", "", "Output file to write (default: stdout)")
	verbose := flag.Bool("v", false, "Toggle verbose logging")
	interactive := flag.Bool("interactive", true, "Prompt on ambiguous restorations instead of auto-picking the most frequent candidate")
	dumpStats := flag.String("dump-stats", "", "Write a msgpack run-stats sidecar to this path")
	validate := flag.Bool("validate", false, "Validate that every dictionary word and id map back to each other before running")
	workers := flag.Int("workers", defaultConfig.Model.Workers, "Maximum concurrent restoration tasks")

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	logger.SetVerbose(*verbose)

	cfg, err := config.InitConfig(*configFile)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *workers > 0 {
		cfg.Model.Workers = *workers
	}

	resolvedDataDir := *dataDir
	if pathResolver, err := utils.NewPathResolver(); err != nil {
		if execDir, execErr := utils.GetExecutableDir(); execErr == nil {
			log.Debugf("path resolver unavailable (%v), falling back to executable dir %s", err, execDir)
			resolvedDataDir = joinIfRelative(execDir, *dataDir)
		}
	} else if resolved, err := pathResolver.GetDataDir(*dataDir); err == nil {
		resolvedDataDir = resolved
	}

	dirStatus := utils.CheckDirStatus(resolvedDataDir)
	if !dirStatus.Exists {
		log.Fatalf("data directory %s does not exist and could not be created: %v", utils.GetAbsolutePath(resolvedDataDir), dirStatus.Error)
	}
	log.Debugf("loading engine data from %s", utils.GetAbsolutePath(resolvedDataDir))

	dict, mdl, err := loadEngine(resolvedDataDir, cfg)
	if err != nil {
		log.Fatalf("loading engine data: %v", err)
	}
	if *validate {
		if err := dict.Validate(); err != nil {
			log.Fatalf("dictionary validation failed: %v", err)
		}
		log.Info("dictionary validation passed")
	}

	var resolver *conflict.Resolver
	if *interactive && cfg.Conflict.Interactive {
		resolver = conflict.NewResolver(os.Stdin, os.Stderr, func(c model.Candidate) string {
			w, _ := dict.Word(c.Mid)
			return w
		})
	}

	proc := restore.NewProcessor(dict, mdl, resolver, restore.Options{
		Workers:             cfg.Model.Workers,
		MaxCandidateBuckets: cfg.Conflict.MaxCandidates,
	})

	in, out, closeFiles, err := openStreams(*inputPath, *outputPath)
	if err != nil {
		log.Fatalf("opening streams: %v", err)
	}
	defer closeFiles()

	started := time.Now()
	stats, err := proc.ProcessText(context.Background(), in, out)
	elapsed := time.Since(started)
	if err != nil {
		log.Fatalf("restoring text: %v", err)
	}

	log.Infof("restored %s tokens in %s (%s potentially foreign)",
		utils.FormatWithCommas(stats.WordsProcessed), elapsed, utils.FormatWithCommas(len(stats.ForeignWords)))

	if *dumpStats != "" {
		snap := snapshot.FromProcessorStats(stats, started, elapsed)
		if err := snapshot.WriteFile(*dumpStats, snap); err != nil {
			log.Errorf("writing stats sidecar: %v", err)
		}
	}
}

// loadEngine loads the dictionary, offset index and model, wiring the
// model's reader through the page cache when enabled.
func loadEngine(dataDir string, cfg *config.Config) (*dictionary.Dictionary, *model.Model, error) {
	dictPath := joinIfRelative(dataDir, cfg.Model.DictionaryPath)
	offsetPath := joinIfRelative(dataDir, cfg.Model.OffsetIndexPath)
	modelPath := joinIfRelative(dataDir, cfg.Model.ModelPath)

	dict, err := dictionary.Load(dictPath)
	if err != nil {
		return nil, nil, err
	}
	index, err := offsetindex.Load(offsetPath)
	if err != nil {
		return nil, nil, err
	}

	// Both cache and direct-I/O readers open the model file lazily, on the
	// first token whose mid id happens to be present in the offset index —
	// and a missing backing file in cache mode doesn't error at all, it just
	// zero-fills every page. Check eagerly here so a missing/unreadable
	// model file is always caught at startup, not hidden behind input that
	// never happens to trigger a lookup.
	f, err := os.Open(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", apperr.ErrModelUnreadable, modelPath, err)
	}
	f.Close()

	var newReader func() (binreader.Reader, error)
	if cfg.Cache.Enabled {
		cache, err := pagecache.Open(modelPath, cfg.Cache.PageSize)
		if err != nil {
			return nil, nil, err
		}
		newReader = func() (binreader.Reader, error) {
			return binreader.NewCacheReader(cache), nil
		}
	} else {
		newReader = func() (binreader.Reader, error) {
			f, err := os.Open(modelPath)
			if err != nil {
				return nil, err
			}
			return binreader.NewFileReader(f), nil
		}
	}

	return dict, model.New(index, newReader), nil
}

func joinIfRelative(dir, path string) string {
	if path == "" || os.IsPathSeparator(path[0]) {
		return path
	}
	return dir + string(os.PathSeparator) + path
}

// openStreams resolves -i/-o to files, falling back to stdin/stdout.
func openStreams(inputPath, outputPath string) (*os.File, *os.File, func(), error) {
	in := os.Stdin
	out := os.Stdout
	var toClose []*os.File

	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, nil, nil, err
		}
		in = f
		toClose = append(toClose, f)
	}
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, nil, err
		}
		out = f
		toClose = append(toClose, f)
	}

	return in, out, func() {
		for _, f := range toClose {
			f.Close()
		}
	}, nil
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{ReportCaller: false, ReportTimestamp: false, Prefix: ""})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[diac] restores missing diacritics using a trigram frequency model")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use --help to see available options")
	l.Print("")
	l.Print("Find out more at", "gh", gh)
}
