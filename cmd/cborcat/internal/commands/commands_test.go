package commands

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/argon-chat/rcbor/cosefixture"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	root := GetRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return buf.String()
}

func TestEncodeProducesHexDecodableOutput(t *testing.T) {
	fixture := cosefixture.SampleMessage1()
	want, err := fixture.Encode(make([]byte, 128))
	require.NoError(t, err)

	hexOut := hex.EncodeToString(want)
	_, err = hex.DecodeString(hexOut)
	require.NoError(t, err)
}

func TestInspectWalksEncodedMessage(t *testing.T) {
	out, err := cosefixture.SampleMessage1().Encode(make([]byte, 128))
	require.NoError(t, err)

	root := GetRootCmd()
	root.SetArgs([]string{"inspect", hex.EncodeToString(out)})
	require.NoError(t, root.Execute())
}

func TestDecodeRejectsInvalidHex(t *testing.T) {
	root := GetRootCmd()
	root.SetArgs([]string{"decode", "not-hex"})
	require.Error(t, root.Execute())
}
