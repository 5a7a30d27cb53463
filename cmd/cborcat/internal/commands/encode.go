package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/argon-chat/rcbor/cosefixture"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:       "encode {edhoc1|cose1}",
	Short:     "Encode a sample fixture and print it as hex",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"edhoc1", "cose1"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var out []byte
		var err error

		switch args[0] {
		case "edhoc1":
			out, err = cosefixture.SampleMessage1().Encode(make([]byte, 128))
		case "cose1":
			out, err = cosefixture.SampleSignedEnvelope().Encode(make([]byte, 128))
		default:
			return fmt.Errorf("unknown fixture %q, want edhoc1 or cose1", args[0])
		}
		if err != nil {
			log.Error("encode failed", "fixture", args[0], "error", err)
			return err
		}

		log.Debug("encoded fixture", "fixture", args[0], "bytes", len(out))
		fmt.Println(hex.EncodeToString(out))
		return nil
	},
}
