// Package dispatch broadcasts built commands to connected robots.
//
// The broadcaster is plain in-memory fan-out: each robot connection holds a
// buffered channel, Publish copies the command to every channel without
// blocking, and nobody is told whether a robot actually received it. That
// matches the channel's contract — at most one publish per request, no
// delivery guarantee, failures observed only in logs.
package dispatch
