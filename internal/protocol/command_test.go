package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandWireShape(t *testing.T) {
	cases := []struct {
		cmd  Command
		want string
	}{
		{NewGet("a"), `{"Get":{"key":"a"}}`},
		{NewSet("a", "1"), `{"Set":{"key":"a","val":"1"}}`},
		{NewRemove("a"), `{"Remove":{"key":"a"}}`},
	}

	for _, c := range cases {
		body, err := json.Marshal(c.cmd)
		require.NoError(t, err)
		require.JSONEq(t, c.want, string(body))

		var got Command
		require.NoError(t, json.Unmarshal(body, &got))
		require.Equal(t, c.cmd, got)
	}
}

func TestCommandUnmarshalRejectsMultipleVariants(t *testing.T) {
	var cmd Command
	err := json.Unmarshal([]byte(`{"Get":{"key":"a"},"Set":{"key":"a","val":"1"}}`), &cmd)
	require.Error(t, err)
}

func TestCommandUnmarshalRejectsUnknownVariant(t *testing.T) {
	var cmd Command
	err := json.Unmarshal([]byte(`{"Frobnicate":{}}`), &cmd)
	require.Error(t, err)
}
