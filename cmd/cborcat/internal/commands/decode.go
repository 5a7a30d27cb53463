package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/argon-chat/rcbor/cosefixture"
	"github.com/spf13/cobra"
)

var decodeAs string

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode a hex-encoded EDHOC message_1 and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("invalid hex input: %w", err)
		}

		switch decodeAs {
		case "edhoc1", "":
			m, err := cosefixture.DecodeEDHOCMessage1(data)
			if err != nil {
				log.Error("decode failed", "error", err)
				return err
			}
			fmt.Printf("method:        %d\n", m.Method)
			fmt.Printf("suites:        %v\n", m.Suites)
			fmt.Printf("ephemeral key: %x\n", m.EphemeralKey)
			fmt.Printf("connection id: %x\n", m.ConnectionID)
			return nil
		default:
			return fmt.Errorf("unknown --as %q, want edhoc1", decodeAs)
		}
	},
}

func init() {
	decodeCmd.Flags().StringVar(&decodeAs, "as", "edhoc1", "schema to decode as")
}
