// Package ui draws a live progress view for multi-file tokenize runs.
// The tracker holds per-file state fed by driver events; the Bubble Tea
// model renders it on stderr while files are lexed in parallel.
package ui
