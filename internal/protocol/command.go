package protocol

import (
	"encoding/json"
	"fmt"
)

// CommandKind names which of the three operations a Command carries.
type CommandKind string

const (
	CommandGet    CommandKind = "Get"
	CommandSet    CommandKind = "Set"
	CommandRemove CommandKind = "Remove"
)

// Command describes the operation a client wants the server to perform.
// Its wire shape is an externally tagged JSON object keyed by the variant
// name — {"Get":{"key":...}}, {"Set":{"key":...,"val":...}},
// {"Remove":{"key":...}} — matching spec §4.9's grammar, and matching how
// serde derives Rust's Command enum in network/common.rs. encoding/json has
// no native tagged-union support, so Command implements
// (Un)MarshalJSON by hand instead of deriving a struct shape directly.
type Command struct {
	Kind  CommandKind
	Key   string
	Value string
}

// NewGet builds a Get command.
func NewGet(key string) Command { return Command{Kind: CommandGet, Key: key} }

// NewSet builds a Set command.
func NewSet(key, value string) Command { return Command{Kind: CommandSet, Key: key, Value: value} }

// NewRemove builds a Remove command.
func NewRemove(key string) Command { return Command{Kind: CommandRemove, Key: key} }

type getOrRemoveBody struct {
	Key string `json:"key"`
}

type setBody struct {
	Key string `json:"key"`
	Val string `json:"val"`
}

func (c Command) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CommandGet, CommandRemove:
		return json.Marshal(map[string]getOrRemoveBody{string(c.Kind): {Key: c.Key}})
	case CommandSet:
		return json.Marshal(map[string]setBody{string(c.Kind): {Key: c.Key, Val: c.Value}})
	default:
		return nil, fmt.Errorf("protocol: unknown command kind %q", c.Kind)
	}
}

func (c *Command) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("protocol: command must have exactly one variant, got %d", len(raw))
	}

	for kind, body := range raw {
		switch CommandKind(kind) {
		case CommandGet:
			var b getOrRemoveBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			*c = Command{Kind: CommandGet, Key: b.Key}
		case CommandRemove:
			var b getOrRemoveBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			*c = Command{Kind: CommandRemove, Key: b.Key}
		case CommandSet:
			var b setBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			*c = Command{Kind: CommandSet, Key: b.Key, Value: b.Val}
		default:
			return fmt.Errorf("protocol: unknown command kind %q", kind)
		}
	}
	return nil
}
