package builtin

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

func dezenas(nums ...int) []any {
	out := make([]any, len(nums))
	for i, n := range nums {
		out[i] = json.Number(strconv.Itoa(n))
	}
	return out
}

/*
TestValidateDezenas_SizeMismatch drops a truncated draw: the expected size
is taken from the batch's first row.
*/
func TestValidateDezenas_SizeMismatch(t *testing.T) {
	in := records.Batch{
		Columns: []string{"loteria", "dezenas"},
		Rows: []records.Record{
			{"loteria": "lotofacil", "dezenas": dezenas(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)},
			{"loteria": "lotofacil", "dezenas": dezenas(1, 2, 3)},
		},
	}
	out := ValidateDezenas{}.Apply(in)
	if out.Len() != 1 {
		t.Fatalf("got %d rows; want 1 (truncated draw dropped)", out.Len())
	}
	if got := out.Rows[0]["dezenas"].([]any); len(got) != 15 {
		t.Fatalf("surviving row has %d dezenas; want 15", len(got))
	}
}

/*
TestValidateDezenas_OutOfRange drops a draw containing a number outside the
product's interval (0 is never drawable).
*/
func TestValidateDezenas_OutOfRange(t *testing.T) {
	in := records.Batch{
		Columns: []string{"loteria", "dezenas"},
		Rows: []records.Record{
			{"loteria": "megasena", "dezenas": dezenas(10, 22, 35, 41, 50, 58)},
			{"loteria": "megasena", "dezenas": dezenas(0, 22, 35, 41, 50, 58)},
			{"loteria": "megasena", "dezenas": dezenas(10, 22, 35, 41, 50, 61)},
		},
	}
	out := ValidateDezenas{}.Apply(in)
	if out.Len() != 1 {
		t.Fatalf("got %d rows; want 1", out.Len())
	}
}

/*
TestValidateDezenas_UnknownProductUnchecked verifies the permissive default:
a product without a registered interval is never range checked.
*/
func TestValidateDezenas_UnknownProductUnchecked(t *testing.T) {
	in := records.Batch{
		Columns: []string{"loteria", "dezenas"},
		Rows: []records.Record{
			{"loteria": "quina", "dezenas": dezenas(1, 2, 3, 4, 5)},
			{"loteria": "quina", "dezenas": dezenas(999, -1, 0, 4, 5)},
		},
	}
	out := ValidateDezenas{}.Apply(in)
	if out.Len() != 2 {
		t.Fatalf("got %d rows; want 2 (unknown product passes)", out.Len())
	}
}

/*
TestValidateDezenas_MalformedFirstRow verifies the degraded mode: when row
0's dezenas is not a list there is no expected size, so only the range
check applies. The malformed row itself fails that check for a known
product.
*/
func TestValidateDezenas_MalformedFirstRow(t *testing.T) {
	in := records.Batch{
		Columns: []string{"loteria", "dezenas"},
		Rows: []records.Record{
			{"loteria": "megasena", "dezenas": nil},
			{"loteria": "megasena", "dezenas": dezenas(10, 22, 35, 41, 50, 58)},
			{"loteria": "megasena", "dezenas": dezenas(1, 2, 3)},
		},
	}
	out := ValidateDezenas{}.Apply(in)
	// No size anchor: the 3-number draw survives the range check too.
	if out.Len() != 2 {
		t.Fatalf("got %d rows; want 2", out.Len())
	}
	if out.Rows[0]["dezenas"] == nil {
		t.Fatalf("malformed row should have been dropped by the range check")
	}
}

/*
TestValidateDezenas_StringElements verifies that zero-padded string
elements ("01") coerce before the range comparison.
*/
func TestValidateDezenas_StringElements(t *testing.T) {
	in := records.Batch{
		Columns: []string{"loteria", "dezenas"},
		Rows: []records.Record{
			{"loteria": "megasena", "dezenas": []any{"01", "22", "35", "41", "50", "58"}},
		},
	}
	out := ValidateDezenas{}.Apply(in)
	if out.Len() != 1 {
		t.Fatalf("string dezenas should pass range validation")
	}
}
