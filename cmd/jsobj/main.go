package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"jsobj/pkg/driver"
	"jsobj/pkg/errors"
	"jsobj/pkg/vm"
)

func main() {
	localeFlag := flag.String("locale", "", "BCP 47 locale for the toLocale* built-ins (default en)")
	debugFlag := flag.Bool("debug", false, "Trace lookups and calls")
	describeFlag := flag.String("describe", "", "Print the value at a dotted path and all of its own property descriptors")
	callFlag := flag.String("call", "", "Call the function at a dotted path")
	newFlag := flag.String("new", "", "Construct with the function at a dotted path")
	thisFlag := flag.String("this", "undefined", "JSON receiver for -call")
	argsFlag := flag.String("args", "", "JSON array of arguments for -call and -new")
	listFlag := flag.Bool("list", false, "List global bindings")

	flag.Parse()

	modes := 0
	for _, set := range []bool{*describeFlag != "", *callFlag != "", *newFlag != "", *listFlag} {
		if set {
			modes++
		}
	}
	if modes > 1 || flag.NArg() > 1 || (modes == 1 && flag.NArg() > 0) {
		fmt.Fprintf(os.Stderr, "Usage: jsobj [path] or jsobj -describe path or jsobj -call path [-this json] [-args json] or jsobj -new path [-args json] or jsobj -list\n")
		os.Exit(64) // Exit code 64: command line usage error
	}

	engine, err := driver.NewEngine(driver.Options{Locale: *localeFlag, Debug: *debugFlag})
	if err != nil {
		errors.DisplayError(os.Stderr, err)
		os.Exit(64)
	}

	switch {
	case *listFlag:
		for _, name := range engine.Globals() {
			fmt.Println(name)
		}
	case *describeFlag != "":
		out, err := engine.Describe(*describeFlag)
		if err != nil {
			fail(engine, err)
		}
		fmt.Print(out)
	case *callFlag != "":
		this, err := engine.ParseValue(*thisFlag)
		if err != nil {
			fail(engine, err)
		}
		args := mustArgs(engine, *argsFlag)
		value, err := engine.Call(*callFlag, this, args)
		report(engine, value, err)
	case *newFlag != "":
		args := mustArgs(engine, *argsFlag)
		value, err := engine.Construct(*newFlag, args)
		report(engine, value, err)
	case flag.NArg() == 1:
		value, err := engine.Lookup(flag.Arg(0))
		report(engine, value, err)
	default:
		runRepl(engine)
	}
}

func mustArgs(engine *driver.Engine, text string) []vm.Value {
	args, err := engine.ParseArgs(text)
	if err != nil {
		fail(engine, err)
	}
	return args
}

func report(engine *driver.Engine, value vm.Value, err error) {
	if !engine.DisplayResult(os.Stdout, value, err) {
		os.Exit(70) // Exit code 70: internal software error
	}
}

func fail(engine *driver.Engine, err error) {
	engine.DisplayResult(os.Stderr, vm.Undefined, err)
	os.Exit(70)
}

// runRepl reads one command per line. A bare path prints the value there,
// "?path" describes it and "path(json, ...)" calls it with an undefined
// receiver.
func runRepl(engine *driver.Engine) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("jsobj (Ctrl+D to exit)")
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				break
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "?"):
			out, err := engine.Describe(strings.TrimSpace(line[1:]))
			if err != nil {
				engine.DisplayResult(os.Stdout, vm.Undefined, err)
				continue
			}
			fmt.Print(out)
		case strings.HasSuffix(line, ")") && strings.Contains(line, "("):
			open := strings.Index(line, "(")
			path := strings.TrimSpace(line[:open])
			args, err := engine.ParseArgs("[" + line[open+1:len(line)-1] + "]")
			if err != nil {
				engine.DisplayResult(os.Stdout, vm.Undefined, err)
				continue
			}
			value, err := engine.Call(path, vm.Undefined, args)
			_ = engine.DisplayResult(os.Stdout, value, err) // Ignore the bool return in REPL
		default:
			value, err := engine.Lookup(line)
			_ = engine.DisplayResult(os.Stdout, value, err)
		}
	}
}
