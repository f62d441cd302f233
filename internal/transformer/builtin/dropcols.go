package builtin

import (
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/loterias"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// DropLotteryColumns removes the feed columns that carry no meaning for the
// batch's lottery product (e.g. timeCoracao outside Timemania). The product
// is read from the first row; the batch invariant guarantees a uniform
// loteria column. Unknown products drop nothing.
type DropLotteryColumns struct{}

func (DropLotteryColumns) Apply(in records.Batch) records.Batch {
	if in.Len() == 0 {
		return in
	}
	loteria := loterias.NormalizeName(AsString(in.Rows[0]["loteria"]))
	drop := loterias.DropColumnsFor(loteria)
	if len(drop) == 0 {
		return in
	}
	return in.WithoutColumns(drop...)
}
