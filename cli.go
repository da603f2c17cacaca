package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"longsd/core"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	files       []string
	overwrite   bool
	workers     int
	configPath  string
	failFast    bool
	showVersion bool

	set map[string]bool // flags given explicitly, by canonical name
}

// flagAliases maps every spelling to the canonical flag name.
var flagAliases = map[string]string{
	"f":                 "files",
	"files":             "files",
	"o":                 "overwrite_prompts",
	"overwrite_prompts": "overwrite_prompts",
	"n":                 "num_gpu_processes",
	"num_gpu_processes": "num_gpu_processes",
	"config":            "config",
	"fail-fast":         "fail-fast",
	"version":           "version",
}

// parseArgs parses args (without the program name). Both "-f a b" and
// "-f a -f b" name two documents; trailing positional arguments are
// documents too.
func parseArgs(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions
	var files stringList

	fs := flag.NewFlagSet("longsd", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: longsd -f <name> [<name>...] [-o] [-n <workers>]\n\n")
		fmt.Fprintf(output, "Illustrates texts/<name>.txt into documents/<name>.md and .html.\n\n")
		fs.PrintDefaults()
	}

	fs.Var(&files, "f", "document names under texts/ (shorthand)")
	fs.Var(&files, "files", "document names under texts/; a name with a dot is used verbatim, else .txt is appended")
	fs.BoolVar(&opts.overwrite, "o", false, "regenerate prompts even when cached (shorthand)")
	fs.BoolVar(&opts.overwrite, "overwrite_prompts", false, "regenerate prompts even when cached")
	fs.IntVar(&opts.workers, "n", 0, "number of render workers (shorthand)")
	fs.IntVar(&opts.workers, "num_gpu_processes", 0, "number of render workers (default from LONGSD_WORKERS or 3)")
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (default $LONGSD_CONFIG)")
	fs.BoolVar(&opts.failFast, "fail-fast", false, "stop the batch at the first failed document")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(expandMultiValue(args, "f", "files")); err != nil {
		return opts, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[flagAliases[f.Name]] = true
	})

	opts.files = append([]string(files), fs.Args()...)
	return opts, nil
}

// expandMultiValue rewrites "-f a b -o" as "-f a -f b -o" for the named
// flags, so one flag can take several values.
func expandMultiValue(args []string, names ...string) []string {
	isMulti := func(arg string) bool {
		name := strings.TrimLeft(arg, "-")
		if name == arg || strings.Contains(name, "=") {
			return false
		}
		for _, n := range names {
			if name == n {
				return true
			}
		}
		return false
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		out = append(out, arg)
		if !isMulti(arg) {
			continue
		}

		// First value is taken as is, even if it starts with "-".
		if i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, arg, args[i])
		}
	}
	return out
}

// apply overlays explicitly given flags on cfg.
func (o cliOptions) apply(cfg *core.Config) {
	if o.set["overwrite_prompts"] {
		cfg.OverwritePrompts = o.overwrite
	}
	if o.set["num_gpu_processes"] {
		cfg.Workers = o.workers
	}
	if o.set["fail-fast"] {
		cfg.FailFast = o.failFast
	}
}
