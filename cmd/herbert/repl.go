package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/npillmayer/herbert/play"
	"github.com/pterm/pterm"
)

// Intp is our interactive front end for a play session.
type Intp struct {
	session *play.Session
	repl    *readline.Instance
}

// REPL starts interactive mode.
func REPL(session *play.Session) error {
	repl, err := readline.New("herbert> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{session: session, repl: repl}
	pterm.Info.Println("Welcome to herbert")
	tracer().Infof("Quit with q or <ctrl>D") // inform user how to stop the CLI
	printSession(session)
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Execute(line); quit {
			break
		}
	}
	println("Good bye!")
	return nil
}

// Execute executes a single command, given on a line by itself. It returns
// true if the user wants to quit.
func (intp *Intp) Execute(cmd string) bool {
	tracer().Debugf("command %q", cmd)
	switch cmd {
	case "g", "go":
		intp.run()
	case "s", "stop":
		intp.session.Stop()
	case "n", "next":
		if intp.session.Step() {
			printSession(intp.session)
		} else {
			pterm.Info.Println("program has ended")
		}
	case "r", "reset":
		intp.session.Reset()
		printSession(intp.session)
	case "p", "print":
		printSession(intp.session)
	case "q", "quit":
		return true
	default:
		pterm.Error.Println(fmt.Sprintf("unknown command %q, use g, s, n, r, p or q", cmd))
	}
	return false
}

// run plays the program in real time, until it ends or the user interrupts.
func (intp *Intp) run() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	s := intp.session
	s.Start(time.Now())
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for s.Running() {
		select {
		case <-interrupt:
			s.Stop()
		case now := <-tick.C:
			if s.Update(now) {
				printSession(s)
			}
		}
	}
}

func printSession(s *play.Session) {
	pterm.Println()
	for _, row := range s.Grid() {
		pterm.Println(row)
	}
	pterm.Println()
	prog := s.Program
	status := fmt.Sprintf("%s [%s] | bytes %d/%d | points %d (best %d, record %d) of %d | steps %d",
		s.LevelName(), s.LevelID(), prog.Bytes(), s.Level.MaxBytes, s.Points(), s.BestPoints(),
		s.Record(), s.Level.Points, s.Steps())
	pterm.Info.Println(status)
	if s.Completed() {
		pterm.Success.Println("level completed")
	}
	if err := s.Err(); err != nil {
		pterm.Error.Println(err.Error())
	}
}
