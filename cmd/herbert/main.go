package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/herbert"
	"github.com/npillmayer/herbert/config"
	"github.com/npillmayer/herbert/level"
	"github.com/npillmayer/herbert/play"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main loads a level and a program, then either plays the program for a
// fixed number of steps or starts an interactive session.
func main() {
	// set up logging
	initDisplay()
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	conff := flag.String("config", "", "Configuration file (YAML)")
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	steps := flag.Int("run", -1, "Run n steps and exit")
	flag.Usage = usage
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	//
	// read configuration; flags take precedence
	conf, err := config.Load(*conff)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if *tlevel != "" {
		conf.Trace = *tlevel
	}
	if *steps >= 0 {
		conf.StepBudget = *steps
	}
	tracer().SetTraceLevel(tracing.TraceLevelFromString(conf.Trace))
	tracer().Infof("Trace level is %s", conf.Trace)
	//
	// load level and program
	lvl, err := loadLevel(flag.Arg(0), conf)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	prog, err := loadProgram(flag.Arg(1), conf)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	session := play.NewSession(lvl, prog, conf.FPS)
	session.UseRecords(play.NewRecords())
	if conf.StepBudget > 0 || *steps == 0 {
		session.Run(conf.StepBudget)
		printSession(session)
		if session.Err() != nil {
			os.Exit(1)
		}
		return
	}
	//
	// start receiving commands
	if err = REPL(session); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [options] level-file program-file\n", os.Args[0])
	flag.PrintDefaults()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func loadLevel(path string, conf *config.Config) (*level.Level, error) {
	lvl, err := level.LoadFile(path, conf.LevelOptions()...)
	if err != nil {
		tracer().Debugf("loading level: %v", err)
		var lerr *herbert.LevelError
		if errors.As(err, &lerr) {
			return nil, fmt.Errorf("Sorry, we were unable to parse the level: %s.", lerr.Msg)
		}
		return nil, fmt.Errorf("Sorry, we were unable to operate on the level file: %w", err)
	}
	return lvl, nil
}

func loadProgram(path string, conf *config.Config) (*play.Program, error) {
	prog, err := play.LoadProgram(path, conf.InterpreterOptions()...)
	if err != nil {
		tracer().Debugf("loading program: %v", err)
		var synerr *herbert.SyntaxError
		if errors.As(err, &synerr) {
			return nil, fmt.Errorf("Sorry, we were unable to parse the program due to a syntax error: %s", synerr)
		}
		return nil, fmt.Errorf("Sorry, we were unable to operate on the program file: %w", err)
	}
	return prog, nil
}
