/*
Package herbert implements a small robot puzzle game, driven by programs
written in a tiny, byte-budget sensitive command language.

A level is a walled grid with a robot and buttons. Programs steer the robot
with three primitive commands: 's' (step forward), 'l' (turn left) and
'r' (turn right). Programs may define single-letter procedures with
parameters, which may be numbers or quoted command sequences. The fewer
bytes a program needs to press all white buttons, the higher the score.

Package structure is as follows:

■ lang: Packages lang/scanner, lang/parser, lang/ast and lang/counter
implement the language front end: tokenizing, parsing into a program tree,
and computing the static byte cost of a program.

■ interp: Package interp evaluates a program tree into a lazy sequence
of robot actions.

■ runtime: Package runtime provides scopes, values and call frames for the
interpreter.

■ level, sim: Package level loads levels from their text format, package sim
simulates a robot on a level and computes scores.

■ play: Package play drives a session of a program running against a level.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package herbert
