package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/llvm"
)

func main() {
	log.SetFlags(0)
	var (
		cfgname        string
		intm, floatm   bool
		echo, emit, nw bool
		maxdepth       int
	)
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.BoolVar(&intm, "i", false, "start in i128 mode (default)")
	flag.BoolVar(&floatm, "f", false, "start in f64 mode")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&emit, "llvm", false, "print LLVM IR instead of evaluating")
	flag.BoolVar(&nw, "nowarn", false, "suppress truncated division warnings")
	flag.IntVar(&maxdepth, "max-depth", 0, "maximum nesting of parentheses and negations (0 for no limit)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [expr | -i | -f]...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flags, exprs := splitArgs(flag.CommandLine, os.Args[1:])
	flag.CommandLine.Parse(flags)
	exprs = append(flag.Args(), exprs...)

	s := newShell(os.Stdout, log.Default())
	if cfgname != "" {
		cfg, err := loadConfig(cfgname)
		if err != nil {
			log.Fatal(err)
		}
		if err := s.configure(cfg); err != nil {
			log.Fatalf("%s: %v", cfgname, err)
		}
	}
	// Flags given explicitly override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			if intm {
				s.mode = calc.ModeInt
			}
		case "f":
			if floatm {
				s.mode = calc.ModeFloat
			}
		case "echo":
			s.echo = echo
		case "llvm":
			s.emit = emit
		case "nowarn":
			s.warnings = !nw
		case "max-depth":
			s.maxdepth = maxdepth
		}
	})
	if maxdepth < 0 {
		log.Fatalf("max depth (%d) must not be negative", maxdepth)
	}

	if len(exprs) == 0 {
		if err := s.repl(os.Stdin); err != nil {
			log.Fatal(err)
		}
		return
	}
	s.args(exprs)
}

// splitArgs splits command-line arguments into the leading flags defined in
// fs and the expressions after them. The first argument that is not a defined
// flag, like -1+2, begins the expressions. A -- argument stays with the flags.
func splitArgs(fs *flag.FlagSet, args []string) (flags, exprs []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args[:i+1], args[i+1:]
		}
		name := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
		if name == arg || name == "" {
			return args[:i], args[i:]
		}
		name, _, hasValue := strings.Cut(name, "=")
		f := fs.Lookup(name)
		if f == nil {
			return args[:i], args[i:]
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); (!ok || !b.IsBoolFlag()) && !hasValue {
			// The flag takes the next argument as its value.
			i++
		}
	}
	return args, nil
}

// shell evaluates lines of input and writes their results.
type shell struct {
	out io.Writer
	log *log.Logger

	mode     calc.Mode
	echo     bool
	emit     bool
	warnings bool
	maxdepth int
}

func newShell(out io.Writer, logger *log.Logger) *shell {
	return &shell{
		out:      out,
		log:      logger,
		mode:     calc.ModeInt,
		warnings: true,
	}
}

func (s *shell) prompt() string {
	if s.mode == calc.ModeFloat {
		return "f> "
	}
	return "i> "
}

// eval evaluates a single expression and prints its result or error.
func (s *shell) eval(line string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f, ok := r.(*calc.Fault)
		if !ok {
			panic(r)
		}
		fmt.Fprintln(s.out, "Fatal:", f)
	}()
	e, err := calc.ParseString(line, calc.MaxDepth(s.maxdepth))
	if err != nil {
		fmt.Fprintln(s.out, "Error:", err)
		return
	}
	if s.echo {
		fmt.Fprintf(s.out, "%v : ", e.Root)
	}
	if s.emit {
		fmt.Fprint(s.out, llvm.Module(e, s.mode))
		return
	}
	switch s.mode {
	case calc.ModeInt:
		fmt.Fprintln(s.out, e.Int(calc.OnWarning(s.warn)))
	case calc.ModeFloat:
		fmt.Fprintln(s.out, calc.Value{Mode: calc.ModeFloat, Float: e.Float()})
	}
}

func (s *shell) warn(w calc.Warning) {
	if s.warnings {
		s.log.Printf("Warning: %v", w)
	}
}

// args evaluates each argument as an expression, except that -i and -f
// switch modes for the arguments after them.
func (s *shell) args(args []string) {
	for _, arg := range args {
		switch arg {
		case "-i":
			s.mode = calc.ModeInt
			continue
		case "-f":
			s.mode = calc.ModeFloat
			continue
		}
		fmt.Fprintln(s.out, s.prompt()+arg)
		s.eval(arg)
	}
}

const help = `i	Enter i128 mode
i128
f	Enter f64 mode
f64
h	Show this help
help
q	Quit
quit
`

// repl reads and evaluates lines from in until it ends or a quit command.
func (s *shell) repl(in io.Reader) error {
	scan := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.prompt())
		if !scan.Scan() {
			return scan.Err()
		}
		line := strings.TrimSpace(scan.Text())
		switch line {
		case "i", "i128":
			s.mode = calc.ModeInt
			fmt.Fprintln(s.out, "Enter i128 mode")
		case "f", "f64":
			s.mode = calc.ModeFloat
			fmt.Fprintln(s.out, "Enter f64 mode")
		case "h", "help":
			fmt.Fprint(s.out, help)
		case "q", "quit":
			fmt.Fprintln(s.out, "Bye!")
			return nil
		default:
			s.eval(line)
		}
	}
}
