/*
Command herbert plays a herbert program on a level.

    herbert [-config file] [-trace level] [-run n] level-file program-file

Without -run, herbert enters interactive mode. Commands are given on a line
by themselves:

    g   go: run the program in real time (interrupt with <ctrl>C)
    s   stop running
    n   next: execute a single step
    r   reset the level and restart the program
    p   print the level and the score
    q   quit

With -run n, herbert executes at most n steps, prints the final state of the
level and the score, and exits.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'herbert.cli'
func tracer() tracing.Trace {
	return tracing.Select("herbert.cli")
}
