// Command vybium-poseidon2-trace generates a Poseidon2 permutation trace
// from a batch of inputs read as JSON from stdin, checks every row
// against the permutation's own constraints, and commits to the trace
// with a sha3-256 digest, mirroring Triton VM's stdin-JSON-line prover
// convention.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/poseidon2-starks-vm/pkg/vybium-starks-vm"
)

// TraceRequest is the single JSON line read from stdin: a permutation
// shape name plus the round constants and batch of inputs to trace.
type TraceRequest struct {
	Shape  string     `json:"shape"`
	Params RoundInput `json:"round_constants"`
	Inputs [][]uint64 `json:"inputs"`
}

// RoundInput mirrors Poseidon2RoundConstants but in plain uint64 form,
// since JSON has no native field-element type.
type RoundInput struct {
	BeginningFullRounds [][]uint64 `json:"beginning_full_rounds"`
	PartialRounds       []uint64   `json:"partial_rounds"`
	EndingFullRounds    [][]uint64 `json:"ending_full_rounds"`
	InternalDiagonal    []uint64   `json:"internal_diagonal"`
}

// TraceResult is the JSON line written to stdout: the flattened trace
// plus a commitment over it.
type TraceResult struct {
	NumRows    int      `json:"num_rows"`
	NumColumns int      `json:"num_columns"`
	Trace      []uint64 `json:"trace"`
	Commitment string   `json:"commitment"`
}

var shapeByName = map[string]vybiumstarksvm.Poseidon2Shape{
	"width8degree7":   vybiumstarksvm.Poseidon2Width8Degree7,
	"width8degree3":   vybiumstarksvm.Poseidon2Width8Degree3,
	"width12degree5":  vybiumstarksvm.Poseidon2Width12Degree5,
	"width16degree11": vybiumstarksvm.Poseidon2Width16Degree11,
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		fatal("failed to read trace request")
	}
	var req TraceRequest
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		fatal(fmt.Sprintf("failed to parse trace request: %v", err))
	}

	shape, ok := shapeByName[req.Shape]
	if !ok {
		fatal(fmt.Sprintf("unknown shape %q", req.Shape))
	}

	logStderr(fmt.Sprintf("building permutation for shape %s...", req.Shape))
	perm, err := vybiumstarksvm.NewPoseidon2Permutation(shape, convertRoundConstants(req.Params))
	if err != nil {
		fatal(fmt.Sprintf("failed to build permutation: %v", err))
	}

	inputs := make([][]*vybiumstarksvm.FieldElement, len(req.Inputs))
	for i, row := range req.Inputs {
		inputs[i] = convertInputRow(row, perm.Width())
	}

	logStderr(fmt.Sprintf("generating trace over %d rows...", len(inputs)))
	trace, err := perm.GenerateTrace(inputs)
	if err != nil {
		fatal(fmt.Sprintf("trace generation failed: %v", err))
	}

	ncols := perm.NumColumns()
	logStderr("checking every row against its own constraints...")
	for i := 0; i < len(inputs); i++ {
		if err := perm.CheckRow(trace[i*ncols : (i+1)*ncols]); err != nil {
			fatal(fmt.Sprintf("row %d failed its own constraints: %v", i, err))
		}
	}

	result := TraceResult{
		NumRows:    len(inputs),
		NumColumns: ncols,
		Trace:      flattenTrace(trace),
		Commitment: commit(trace),
	}

	out, err := json.Marshal(result)
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize result: %v", err))
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}

func convertRoundConstants(r RoundInput) vybiumstarksvm.Poseidon2RoundConstants {
	return vybiumstarksvm.Poseidon2RoundConstants{
		BeginningFullRounds: convertMatrix(r.BeginningFullRounds),
		PartialRounds:       convertRow(r.PartialRounds),
		EndingFullRounds:    convertMatrix(r.EndingFullRounds),
		InternalDiagonal:    convertRow(r.InternalDiagonal),
	}
}

func convertMatrix(rows [][]uint64) [][]*vybiumstarksvm.FieldElement {
	out := make([][]*vybiumstarksvm.FieldElement, len(rows))
	for i, row := range rows {
		out[i] = convertRow(row)
	}
	return out
}

func convertRow(vals []uint64) []*vybiumstarksvm.FieldElement {
	out := make([]*vybiumstarksvm.FieldElement, len(vals))
	for i, v := range vals {
		out[i] = vybiumstarksvm.FieldElementFromUint64(v)
	}
	return out
}

func convertInputRow(vals []uint64, width int) []*vybiumstarksvm.FieldElement {
	if len(vals) != width {
		fatal(fmt.Sprintf("input row has %d values, want %d", len(vals), width))
	}
	return convertRow(vals)
}

func flattenTrace(trace []*vybiumstarksvm.FieldElement) []uint64 {
	out := make([]uint64, len(trace))
	for i, e := range trace {
		out[i] = e.Big().Uint64()
	}
	return out
}

func commit(trace []*vybiumstarksvm.FieldElement) string {
	buf := make([]byte, 8*len(trace))
	for i, e := range trace {
		binary.LittleEndian.PutUint64(buf[i*8:], e.Big().Uint64())
	}
	digest := sha3.Sum256(buf)
	return fmt.Sprintf("%x", digest)
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "vybium-poseidon2-trace:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
