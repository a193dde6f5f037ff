package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gozshscan/internal/cst"
	"gozshscan/internal/grammar"
	"gozshscan/internal/scanner"
	"gozshscan/pkg/platform"
)

func main() {
	scriptFile := flag.String("f", "", "scan a script file instead of reading stdin")
	verbose := flag.Bool("v", false, "enable verbose structured logging to stderr")
	scenarioName := flag.String("scenario", "", "drive a named canned scenario instead of scanning free text")
	flag.Parse()

	if *verbose {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if *scenarioName != "" {
		runScenario(*scenarioName)
		return
	}

	if *scriptFile != "" {
		dumpFreeScan(readScriptOrFatal(*scriptFile))
		return
	}

	if flag.NArg() > 0 {
		dumpFreeScan(readScriptOrFatal(flag.Arg(0)))
		return
	}

	if isTerminal(os.Stdin) {
		runREPL()
		return
	}

	src, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read stdin")
	}
	dumpFreeScan(src)
}

// readScriptOrFatal expands "~" and fixes up separators in a user-supplied
// script path before reading it, so a log line on failure shows the path
// that was actually opened rather than the raw flag or argument text.
func readScriptOrFatal(rawPath string) []byte {
	resolved := platform.NormalizePath(rawPath)
	src, err := os.ReadFile(resolved)
	if err != nil {
		log.Fatal().Err(err).Str("file", resolved).Bool("absolute", platform.IsAbsolute(resolved)).Msg("cannot read script file")
	}
	return src
}

func runScenario(name string) {
	for _, scen := range grammar.Scenarios {
		if scen.Name != name {
			continue
		}
		res := grammar.Run(scanner.New(), scen)
		if !res.Completed {
			fmt.Fprintf(os.Stderr, "scenario %q stalled at step %d (%q)\n", scen.Name, res.FailedAt, scen.Steps[res.FailedAt].Name)
			os.Exit(1)
		}
		k := 0
		for _, step := range scen.Steps {
			if step.Literal != 0 {
				continue
			}
			fmt.Printf("%-24s %s\n", step.Name, res.Symbols[k])
			k++
		}
		return
	}
	fmt.Fprintf(os.Stderr, "unknown scenario %q; known scenarios:\n", name)
	for _, scen := range grammar.Scenarios {
		fmt.Fprintf(os.Stderr, "  %s\n", scen.Name)
	}
	os.Exit(1)
}

// dumpFreeScan drives the scanner over src without any surrounding
// grammar, offering every terminal valid at every call: with no parser
// state to narrow valid_symbols this cannot reproduce a real parse, but
// it exercises every handler's own decision of whether it applies here,
// which is exactly what an exploratory "what would the scanner do with
// this byte?" tool needs.
func dumpFreeScan(src []byte) {
	l := scanner.NewBufLexer(src)
	s := scanner.New()
	var leaves []*cst.Node
	everything := allSymbolsValid()

	for !l.EOF() {
		before := l.Pos()
		res := s.Scan(l, everything)
		if !res.OK {
			l.Advance(true)
			continue
		}
		leaves = append(leaves, cst.NewLeaf(res.Symbol, src[before:l.EndPos()], before, l.EndPos()))
		if l.Pos() == before {
			l.Advance(true)
		}
	}

	root := cst.BuildFlat("scan", leaves)
	fmt.Print(cst.Dump(root))
}

func allSymbolsValid() scanner.ValidSymbols {
	var v scanner.ValidSymbols
	for i := range v {
		if scanner.Symbol(i) == scanner.ErrorRecovery {
			continue
		}
		v[i] = true
	}
	return v
}

func runREPL() {
	historyFile := platform.NormalizePath(platform.JoinPath("~", ".zscan_history"))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "zscan> ",
		HistoryFile:     historyFile,
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Error().Err(err).Msg("readline init failed, falling back to plain stdin")
		fallbackREPL()
		return
	}
	defer rl.Close()

	s := scanner.New()
	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		if line == "" {
			continue
		}
		scanLine(s, line)
	}
}

func fallbackREPL() {
	s := scanner.New()
	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("zscan> ")
	for sc.Scan() {
		scanLine(s, sc.Text())
		fmt.Print("zscan> ")
	}
}

func scanLine(s *scanner.Scanner, line string) {
	l := scanner.NewBufLexer([]byte(line))
	everything := allSymbolsValid()
	var leaves []*cst.Node
	for !l.EOF() {
		before := l.Pos()
		res := s.Scan(l, everything)
		if !res.OK {
			l.Advance(true)
			continue
		}
		leaves = append(leaves, cst.NewLeaf(res.Symbol, []byte(line)[before:l.EndPos()], before, l.EndPos()))
		if l.Pos() == before {
			l.Advance(true)
		}
	}
	root := cst.BuildFlat("line", leaves)
	fmt.Print(cst.Dump(root))
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
