package commands

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/argon-chat/rcbor/rcbor"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <hex>",
	Short: "Walk a hex-encoded CBOR item and print its structure",
	Long: `inspect does not assume any schema: it walks the item using only
its major types, recursing into arrays and maps until it bottoms out at
scalars. It is meant for eyeballing output from encode, or from any other
producer of the subset rcbor reads.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("invalid hex input: %w", err)
		}

		r := rcbor.NewReader(data)
		if err := walk(r, 0); err != nil {
			log.Error("inspect failed", "error", err, "at", r.Stop())
			return err
		}
		if remaining := r.BytesRemaining(); remaining > 0 {
			log.Warn("trailing bytes after top-level item", "bytes", remaining)
		}
		return nil
	},
}

// walk prints one item at the current cursor position, recursing into
// arrays and maps. It never advances past a malformed item; the caller
// sees the error and the cursor position where it stopped.
func walk(r *rcbor.Reader, depth int) error {
	indent := strings.Repeat("  ", depth)

	switch r.Next() {
	case rcbor.MajorUnsigned:
		v, sc := r.ReadUnsigned()
		if sc == rcbor.SizeNone {
			return fmt.Errorf("malformed unsigned integer")
		}
		fmt.Printf("%sunsigned(%d)\n", indent, v)

	case rcbor.MajorByteString:
		v, ok := r.ReadData()
		if !ok {
			return fmt.Errorf("malformed byte string")
		}
		fmt.Printf("%sbytes(%d): %x\n", indent, len(v), v)

	case rcbor.MajorTextString:
		v, ok := r.ReadText()
		if !ok {
			return fmt.Errorf("malformed text string")
		}
		fmt.Printf("%stext(%d): %q\n", indent, len(v), v)

	case rcbor.MajorArray:
		n := r.ReadArray()
		if n == rcbor.MaxUint {
			return fmt.Errorf("malformed array header")
		}
		fmt.Printf("%sarray[%d]\n", indent, n)
		for i := uint64(0); i < n; i++ {
			if err := walk(r, depth+1); err != nil {
				return fmt.Errorf("array element %d: %w", i, err)
			}
		}

	case rcbor.MajorMap:
		n := r.ReadMap()
		if n == rcbor.MaxUint {
			return fmt.Errorf("malformed map header")
		}
		fmt.Printf("%smap[%d pairs]\n", indent, n)
		for i := uint64(0); i < n; i++ {
			fmt.Printf("%skey:\n", indent)
			if err := walk(r, depth+1); err != nil {
				return fmt.Errorf("map entry %d key: %w", i, err)
			}
			fmt.Printf("%svalue:\n", indent)
			if err := walk(r, depth+1); err != nil {
				return fmt.Errorf("map entry %d value: %w", i, err)
			}
		}

	case rcbor.MajorSimple:
		v := r.ReadSimple()
		if v == rcbor.SimpleNone {
			return fmt.Errorf("malformed simple value")
		}
		fmt.Printf("%ssimple(%s)\n", indent, v)

	default:
		return fmt.Errorf("unrecognized or exhausted input at offset %d", r.Stop())
	}

	return nil
}
