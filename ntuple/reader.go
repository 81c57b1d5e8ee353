// Package ntuple reads events from the flat ROOT tree written by the event
// dumper. Every entry of the tree becomes a freshly allocated vbf.Event.
package ntuple

import (
	"errors"
	"fmt"
	"io"

	"go-hep.org/x/hep/rootio"

	"github.com/decibelcooper/vbfplot/vbf"
)

// TreeName is the name of the event tree in every input file.
const TreeName = "eventTree"

// ErrNoTree is returned when a file has no event tree.
var ErrNoTree = errors.New("ntuple: no event tree")

// Reader iterates over the entries of an event tree.
type Reader struct {
	f    *rootio.File
	tree rootio.Tree
	sc   *rootio.TreeScanner

	b        branches
	triggers []int32
	ptrs     []interface{}
	ev       *vbf.Event
	err      error
}

// Open opens the named file. The menu selects the trigger branches that are
// read; each one must exist in the tree.
func Open(name string, menu *vbf.TriggerMenu) (*Reader, error) {
	r := &Reader{triggers: make([]int32, menu.Len())}
	vars, ptrs := scanVars(&r.b, r.triggers, menu)
	if err := r.open(name, TreeName, vars, ptrs); err != nil {
		return nil, err
	}
	return r, nil
}

// open binds vars of the named tree to ptrs, which must point into r.b or
// r.triggers.
func (r *Reader) open(name, treeName string, vars []rootio.ScanVar, ptrs []interface{}) error {
	f, err := rootio.Open(name)
	if err != nil {
		return err
	}

	obj, err := f.Get(treeName)
	if err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, ErrNoTree)
	}
	tree, ok := obj.(rootio.Tree)
	if !ok {
		f.Close()
		return fmt.Errorf("%s: %w", name, ErrNoTree)
	}

	sc, err := rootio.NewTreeScannerVars(tree, vars...)
	if err != nil {
		f.Close()
		return fmt.Errorf("%s: scanning %s: %w", name, treeName, err)
	}
	r.f, r.tree, r.sc, r.ptrs = f, tree, sc, ptrs
	return nil
}

// Entries returns the number of events in the tree.
func (r *Reader) Entries() int64 { return r.tree.Entries() }

// Next reads the next event. It returns false at the end of the tree or on
// error.
func (r *Reader) Next() bool {
	if r.err != nil || !r.sc.Next() {
		return false
	}
	if err := r.sc.Scan(r.ptrs...); err != nil {
		r.err = err
		return false
	}
	r.ev = r.b.event(r.triggers)
	return true
}

// Event returns the event read by the last call to Next.
func (r *Reader) Event() *vbf.Event { return r.ev }

// Err returns the first error met while reading.
func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}
	if err := r.sc.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (r *Reader) Close() error {
	err := r.sc.Close()
	if ferr := r.f.Close(); err == nil {
		err = ferr
	}
	return err
}

// ScanFile calls fn for every event of the named file, stopping at the first
// error fn returns.
func ScanFile(name string, menu *vbf.TriggerMenu, fn func(*vbf.Event) error) error {
	r, err := Open(name, menu)
	if err != nil {
		return err
	}
	defer r.Close()

	for r.Next() {
		if err := fn(r.Event()); err != nil {
			return err
		}
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
