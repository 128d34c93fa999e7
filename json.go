package dandy

import (
	"encoding/json"
	"fmt"
)

type jsonOp struct {
	Op    OpType          `json:"op"`
	From  *string         `json:"from,omitempty"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

func encodeOp(op Op) (jsonOp, error) {
	result := jsonOp{
		Op:   op.Type(),
		Path: op.Pointer(),
	}

	if from, ok := source(op); ok {
		result.From = &from
	}

	if value, ok := payload(op); ok {
		b, err := json.Marshal(value)
		if err != nil {
			return result, err
		}
		result.Value = b
	}

	return result, nil
}

func (op jsonOp) decode() (Op, error) {
	var value interface{}
	if op.Value != nil {
		if err := json.Unmarshal(op.Value, &value); err != nil {
			return nil, err
		}
	}

	requireValue := func() error {
		if op.Value == nil {
			return fmt.Errorf("%s operation at %q is missing value", op.Op, op.Path)
		}
		return nil
	}

	requireFrom := func() error {
		if op.From == nil {
			return fmt.Errorf("%s operation at %q is missing from", op.Op, op.Path)
		}
		return nil
	}

	switch op.Op {
	case TypeAdd:
		if err := requireValue(); err != nil {
			return nil, err
		}
		return OpAdd{Path: op.Path, Value: value}, nil
	case TypeRemove:
		return OpRemove{Path: op.Path}, nil
	case TypeReplace:
		if err := requireValue(); err != nil {
			return nil, err
		}
		return OpReplace{Path: op.Path, Value: value}, nil
	case TypeCopy:
		if err := requireFrom(); err != nil {
			return nil, err
		}
		return OpCopy{From: *op.From, Path: op.Path}, nil
	case TypeMove:
		if err := requireFrom(); err != nil {
			return nil, err
		}
		return OpMove{From: *op.From, Path: op.Path}, nil
	case TypeTest:
		if err := requireValue(); err != nil {
			return nil, err
		}
		return OpTest{Path: op.Path, Value: value}, nil
	default:
		return nil, fmt.Errorf("unknown op: %q", op.Op)
	}
}

// MarshalJSON encodes the patch in the RFC 6902 format.
func (patch Patch) MarshalJSON() ([]byte, error) {
	ops := make([]jsonOp, 0, len(patch))
	for _, op := range patch {
		encoded, err := encodeOp(op)
		if err != nil {
			return nil, err
		}
		ops = append(ops, encoded)
	}
	return json.Marshal(ops)
}

// UnmarshalJSON decodes a patch in the RFC 6902 format.
func (patch *Patch) UnmarshalJSON(data []byte) error {
	var ops []jsonOp
	if err := json.Unmarshal(data, &ops); err != nil {
		return err
	}

	result := make(Patch, 0, len(ops))
	for _, op := range ops {
		decoded, err := op.decode()
		if err != nil {
			return err
		}
		result = append(result, decoded)
	}

	*patch = result
	return nil
}
