package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/exprcalc/exprcalc/internal/config"
	"github.com/exprcalc/exprcalc/internal/expression"
	"github.com/exprcalc/exprcalc/internal/server"
	"github.com/exprcalc/exprcalc/internal/types"
	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
)

type Option struct {
	Expression string `short:"e" long:"expression" description:"[OPTIONAL] Expression to evaluate once (default: read lines from stdin)" required:"false"`
	Config     string `short:"c" long:"config" description:"[OPTIONAL] Config file (YAML)" required:"false"`
	Listen     string `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the evaluation API" required:"false"`
	JSON       bool   `long:"json" description:"[OPTIONAL] Dump results and errors as JSON"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(os.Stdout)
			return 1
		}
	}
	if opt.Expression != "" && opt.Listen != "" {
		parser.WriteHelp(os.Stdout)
		return 1
	}

	cfg := config.Default()
	if opt.Config != "" {
		cfg, err = config.LoadFile(opt.Config)
		if err != nil {
			log.Printf("failed to load config: %v", err)
			return 1
		}
	}

	evaluator := &expression.Evaluator{
		Division: cfg.Division,
		MaxDepth: cfg.MaxDepth,
	}

	// server mode
	if opt.Listen != "" {
		handler := server.NewHTTPHandler(evaluator, cfg.MaxDepth)
		if err := server.Serve(opt.Listen, handler); err != nil {
			log.Printf("failed to serve evaluation API: %v", err)
			return 1
		}
		return 0
	}

	if opt.Expression != "" {
		return evalOnce(opt.Expression, evaluator, cfg.MaxDepth, opt.JSON)
	}

	return repl(evaluator, cfg.MaxDepth, opt.JSON)
}

func repl(evaluator *expression.Evaluator, maxDepth int, asJSON bool) int {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print(">>> ")
		}
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		if line == "" {
			continue
		}
		evalOnce(line, evaluator, maxDepth, asJSON)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("failed to read input: %v", err)
		return 1
	}
	return 0
}

func evalOnce(source string, evaluator *expression.Evaluator, maxDepth int, asJSON bool) int {
	expr, err := expression.ParseExprMaxDepth(source, maxDepth)
	if err != nil {
		dumpError(err, asJSON)
		return 1
	}

	ret, err := evaluator.EvaluateValue(expr)
	if err != nil {
		dumpError(err, asJSON)
		return 1
	}

	if asJSON {
		result := map[string]any{
			"tree":   expr.Render(),
			"result": strconv.FormatFloat(ret, 'g', -1, 64),
		}
		if err := dumpJSON(os.Stdout, result); err != nil {
			log.Printf("failed to dump result as JSON: %v", err)
			return 1
		}
		return 0
	}

	fmt.Println(expr.Render())
	fmt.Printf("Result: %s\n", strconv.FormatFloat(ret, 'g', -1, 64))
	return 0
}

func dumpError(err error, asJSON bool) {
	var exception types.Exception
	if asJSON && errors.As(err, &exception) {
		if dumpErr := dumpJSON(os.Stderr, exception.Exception()); dumpErr != nil {
			log.Printf("failed to dump error as JSON: %v", dumpErr)
		}
		return
	}

	fmt.Fprintln(os.Stderr, err)
}

func dumpJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("json.Encode: %w", err)
	}
	return nil
}
