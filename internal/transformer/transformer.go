// Package transformer defines the batch transformation contract shared by
// the cleaning and feature stages of the pipeline.
package transformer

import "github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"

// Transformer rewrites one batch into the next.
type Transformer interface {
	Apply(records.Batch) records.Batch
}

// Chain is an ordered list of transformers applied left to right.
type Chain []Transformer

func (c Chain) Apply(in records.Batch) records.Batch {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}

// Func adapts a plain function to the Transformer interface.
type Func func(records.Batch) records.Batch

func (f Func) Apply(in records.Batch) records.Batch { return f(in) }
