package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mips32repl/mips32repl/assembler"
	"github.com/mips32repl/mips32repl/config"
	"github.com/mips32repl/mips32repl/cpu"
	"github.com/mips32repl/mips32repl/register"
	"github.com/mips32repl/mips32repl/repl"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion bool
		showHelp    bool
		developer   bool
		noAutoExec  bool
		sourceFile  string
		configPath  string
		entryFlag   string
		stackSize   uint
	)

	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&developer, "d", false, "Start with trace and verbose dumps on")
	flag.BoolVar(&developer, "developer", false, "Alias for -d")
	flag.BoolVar(&noAutoExec, "noae", false, "Start with auto-execute off")
	flag.BoolVar(&noAutoExec, "noautoexecute", false, "Alias for -noae")
	flag.StringVar(&sourceFile, "f", "", "Assemble and run a source file non-interactively, then exit")
	flag.StringVar(&sourceFile, "file", "", "Alias for -f")
	flag.StringVar(&sourceFile, "filename", "", "Alias for -f")
	flag.StringVar(&configPath, "config", "", "Path to an alternate TOML config file")
	flag.StringVar(&entryFlag, "entry", "", "Set the engine's starting program counter (hex or decimal)")
	flag.UintVar(&stackSize, "stack-size", 0, "Stack size in bytes, subtracted from the default stack top")

	flag.Parse()

	if showVersion {
		fmt.Printf("mips32repl %s (%s)\n", Version, Commit)
		os.Exit(0)
	}
	if showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	asm := assembler.New(cfg.Execution.TextBase, cfg.Execution.DataBase, cfg.Execution.StackTop)
	engine := cpu.New(asm, os.Stdin, os.Stdout, os.Stderr)

	// -entry and -stack-size move the engine's starting pc/$sp after
	// construction. They do not affect where the assembler lays code
	// and data out: that's cfg.Execution.TextBase/DataBase, fixed for
	// the whole session once asm is built above.
	if entryFlag != "" {
		if addr, ok := parseAddress(entryFlag); ok {
			engine.SetPC(addr)
		}
	}
	if stackSize > 0 {
		engine.Registers.Set(register.Sp, cfg.Execution.StackTop-uint32(stackSize)) // #nosec G115 -- flag-bounded
	}

	opts := repl.Options{
		AutoExecute: cfg.REPL.AutoExecute && !noAutoExec,
		AutoDump:    cfg.REPL.AutoDump,
		Trace:       cfg.REPL.Trace || developer,
		Verbose:     cfg.REPL.Verbose || developer,
		MaxSteps:    cfg.Execution.MaxStepsPerResume,
	}
	r := repl.New(engine, asm, os.Stdout, os.Stderr, opts)
	r.NumberFormat = cfg.Display.NumberFormat

	if sourceFile != "" {
		if _, err := os.Stat(sourceFile); err != nil {
			fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", sourceFile, err)
			os.Exit(1)
		}
		r.Feed(":file " + sourceFile)
		if err := r.Run(strings.NewReader("")); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(engine.ExitCode)
	}

	if err := r.Run(os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(engine.ExitCode)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func parseAddress(s string) (uint32, bool) {
	var v uint32
	if _, err := fmt.Sscanf(s, "0x%x", &v); err == nil {
		return v, true
	}
	if _, err := fmt.Sscanf(s, "%d", &v); err == nil {
		return v, true
	}
	return 0, false
}

func printHelp() {
	fmt.Printf(`mips32repl %s

An interactive MIPS32 assembly interpreter: type assembly lines at the
prompt and they assemble and (by default) execute immediately.

Usage: mips32repl [options]

Options:
  -help                 Show this help message
  -version               Show version information
  -d, -developer          Start with trace and verbose dumps on
  -noae, -noautoexecute   Start with auto-execute off
  -f, -file FILE          Assemble and run FILE non-interactively, then exit
  -config PATH            Load an alternate TOML config file
  -entry ADDR             Set the engine's starting program counter
  -stack-size N           Shrink the stack by N bytes from the default top

Once running, type ':help' for the list of meta-commands.
`, Version)
}
