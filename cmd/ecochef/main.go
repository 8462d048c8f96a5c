// Command ecochef 是推荐引擎的命令行入口：
//
//	ecochef -config ecochef.yaml recommend -user u1 -ingredients "tomato, onion, garlic" -dietary vegan
//	ecochef like -user u1 -recipe "Tomato Soup"
//	ecochef like -user u1 -recipe "Tomato Soup" -liked=false
//	ecochef feedback -user u1 -recipe "Tomato Soup" -rating 5
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/rushteam/ecochef/config"
	_ "github.com/rushteam/ecochef/config/builders"
	"github.com/rushteam/ecochef/core"
)

const usage = `usage: ecochef [-config file] <command> [flags]

commands:
  recommend  -user ID -ingredients TEXT [-dietary TAG]
  like       -user ID -recipe TITLE [-liked=false]
  feedback   -user ID -recipe TITLE -rating 1..5
`

// 退出码。
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("ecochef", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := global.String("config", os.Getenv("ECOCHEF_CONFIG"), "config file (yaml)")
	if err := global.Parse(args); err != nil {
		return exitUsage
	}
	if global.NArg() == 0 {
		global.Usage()
		return exitUsage
	}

	cmd, err := parseCommand(global.Arg(0), global.Args()[1:], stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return exitError
	}

	env, err := bootstrap(ctx, cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "startup:", err)
		return exitError
	}
	defer env.Close()

	if err := cmd.exec(ctx, env.engine, stdout); err != nil {
		red := color.New(color.FgRed, color.Bold).SprintFunc()
		fmt.Fprintf(stderr, "%s %v\n", red(errorLabel(err)), err)
		return exitError
	}
	return exitOK
}

// errorLabel 按错误分类给出前缀。
func errorLabel(err error) string {
	switch {
	case core.IsInvalidInput(err):
		return "invalid:"
	case core.IsNotFound(err):
		return "not found:"
	case core.IsUnavailable(err):
		return "unavailable:"
	default:
		return "error:"
	}
}
