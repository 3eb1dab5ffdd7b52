package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/plan-systems/klog"

	"github.com/zephyrtronium/mathexpr"
)

func main() {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
	})
	var (
		inname    string
		consts    [][2]string
		sci, echo bool
		prec      uint
	)
	addconst := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`constant definitions must be "name=value", not %q`, s)
		}
		consts = append(consts, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.Func("const", "name=value constant definition (any number of times)", addconst)
	flag.UintVar(&prec, "p", mathexpr.DefaultPrec, "significant digits of inexact results")
	flag.BoolVar(&sci, "sci", false, "also recognize exp, ln, and log")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()
	defer klog.Flush()
	if prec == 0 || prec > 1<<20 {
		klog.Fatalf("precision (%d) must be between 1 and %d", prec, 1<<20)
	}

	opts := []mathexpr.ParseOption{mathexpr.Prec(uint32(prec))}
	if sci {
		opts = append(opts, mathexpr.ParseFuncs(mathexpr.ScientificFuncs()))
	}
	for _, d := range consts {
		nm := d[0]
		vl := d[1]
		r, err := mathexpr.EvalString(vl, opts...)
		if err != nil {
			klog.Fatalf("setting %s: %v", nm, err)
		}
		opts = append(opts, mathexpr.ParseConst(nm, r))
	}
	preset := mathexpr.ParsingPreset(opts...)

	srcs, err := readinput(inname, flag.NArg() == 0)
	if err != nil {
		klog.Fatal(err)
	}
	srcs = append(srcs, flag.Args()...)

	status := run(os.Stdout, srcs, preset, echo)
	klog.Flush()
	os.Exit(status)
}

// run evaluates each of srcs, printing results to w and logging failures.
// The returned exit status is 1 if any expression failed.
func run(w io.Writer, srcs []string, preset mathexpr.ParseOption, echo bool) int {
	status := 0
	for _, src := range srcs {
		a, err := mathexpr.Parse(src, preset)
		if err != nil {
			klog.Errorf("parsing %q: %v", src, err)
			status = 1
			continue
		}
		if echo {
			fmt.Fprintf(w, "%v : ", a)
		}
		r, err := a.Eval()
		if err != nil {
			if echo {
				fmt.Fprintln(w)
			}
			klog.Errorf("evaluating %q: %v", src, err)
			status = 1
			continue
		}
		fmt.Fprintln(w, mathexpr.Plain(r))
	}
	return status
}

// readinput reads expressions from the input named by inname, if any.
func readinput(inname string, std bool) ([]string, error) {
	f, err := infile(inname, std)
	if f == nil || err != nil {
		return nil, err
	}
	defer f.Close()
	return readlines(f)
}

// infile opens the named input. Closing the result for stdin leaves stdin open.
func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return f, nil
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}

// readlines reads the non-blank lines of r.
func readlines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		lines = append(lines, s.Text())
	}
	return lines, s.Err()
}
