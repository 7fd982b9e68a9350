// Package md converts Markdown text to HTML in four ordered passes:
// newline normalization, fence extraction, block rendering with an
// ordered set of inline rules, and emission with adjacent code-chunk
// coalescing. Each pass reads the output of the previous one and
// never backtracks.
//
// All scanning is literal with explicit cursors. There is no regex
// engine anywhere in the pipeline, and the converter shares no state
// with the configuration parsers: input bytes in, owned HTML bytes
// out.
package md
