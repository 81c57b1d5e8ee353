// Package vbfplot holds the helpers shared by the VBF selection tools:
// concurrent reading of input files, cut-flow tables, efficiency points and
// axis tick markers.
package vbfplot
