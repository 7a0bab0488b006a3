// Command trcore is a developer CLI around the internal/tricore
// decode/emit pipeline: it decodes a hex-encoded guest instruction block
// and prints the emitted IR operation trace, grounded on the teacher's
// cmd/z80opt/main.go cobra CLI shape (flag-driven subcommands, plain
// fmt.Printf progress/reporting, no separate flag-parsing library).
package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tricore-dbt/trcore/internal/tricore/cpustate"
	"github.com/tricore-dbt/trcore/internal/tricore/decode"
	"github.com/tricore-dbt/trcore/internal/tricore/diag"
	"github.com/tricore-dbt/trcore/internal/tricore/ir"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trcore",
		Short: "TriCore dynamic-binary-translation front end",
	}

	var pcFlag string
	var hexFlag string
	var memIdx uint32
	var singleStep bool
	var feature13 bool
	var maxInstr int
	var verbose bool

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a hex-encoded guest instruction block and print the emitted IR trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			pc, err := parseHexOrDec(pcFlag)
			if err != nil {
				return fmt.Errorf("invalid --pc: %w", err)
			}
			code, err := decodeHexBytes(hexFlag)
			if err != nil {
				return fmt.Errorf("invalid --hex: %w", err)
			}

			rec := ir.NewRecorder()
			g := cpustate.DeclareGlobals(rec)

			logger := diag.Discard()
			if verbose {
				logger = diag.New(os.Stderr, nil)
			}

			opts := decode.DefaultOptions()
			opts.MemIdx = memIdx
			opts.SingleStepEnabled = singleStep
			opts.MaxInstructions = maxInstr
			opts.Logger = logger
			if feature13 {
				opts.Features |= decode.FeatureFlag13
			}

			env := &byteEnvironment{code: code, base: uint32(pc)}
			result := decode.TranslateBlock(rec, g, env, uint32(pc), opts)

			fmt.Printf("block start=0x%x end=0x%x size=%d instrs=%d exit=%s leak=%v\n",
				result.StartPC, result.EndPC, result.Size, result.InstrCount,
				exitStateName(result.ExitState), result.TempLeak)
			fmt.Print(rec.String())
			return nil
		},
	}
	decodeCmd.Flags().StringVar(&pcFlag, "pc", "0x0", "starting guest program counter (hex with 0x prefix or decimal)")
	decodeCmd.Flags().StringVar(&hexFlag, "hex", "", "hex-encoded little-endian guest instruction bytes")
	decodeCmd.Flags().Uint32Var(&memIdx, "mem-idx", 0, "MMU index passed to memory-access emitters")
	decodeCmd.Flags().BoolVar(&singleStep, "single-step", false, "disable chained block exits")
	decodeCmd.Flags().BoolVar(&feature13, "feature-1.3", false, "gate post-1.3-core-only opcode behavior")
	decodeCmd.Flags().IntVar(&maxInstr, "max-instructions", 4096, "translation-buffer instruction cap")
	decodeCmd.Flags().BoolVar(&verbose, "verbose", false, "print decode-error/trap diagnostics to stderr")
	decodeCmd.MarkFlagRequired("hex")

	rootCmd.AddCommand(decodeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// byteEnvironment implements decode.Environment over an in-memory guest
// code buffer, fetching little-endian 32-bit words the way the real
// fetch_code collaborator would (spec §6), with a harmless zero-padded
// over-read at the tail.
type byteEnvironment struct {
	code []byte
	base uint32
}

func (e *byteEnvironment) FetchCode(pc uint32) uint32 {
	off := int(pc - e.base)
	var buf [4]byte
	for i := 0; i < 4; i++ {
		if off+i >= 0 && off+i < len(e.code) {
			buf[i] = e.code[off+i]
		}
	}
	return binary.LittleEndian.Uint32(buf[:])
}

func decodeHexBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.ReplaceAll(s, " ", "")
	return hex.DecodeString(s)
}

func parseHexOrDec(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 32)
	}
	return strconv.ParseUint(s, 10, 32)
}

func exitStateName(s decode.BState) string {
	switch s {
	case decode.StateNone:
		return "none"
	case decode.StateStop:
		return "stop"
	case decode.StateBranch:
		return "branch"
	case decode.StateExcp:
		return "excp"
	default:
		return "unknown"
	}
}
