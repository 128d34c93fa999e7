package dandy

import (
	"fmt"
	"io"
)

// Writer is an interface for writing values. This can be used for supporting a custom serialization format.
type Writer interface {
	WriteUint8(v uint8) error
	WriteString(v string) error
	WriteValue(v interface{}) error
}

// Reader is an interface for reading values. This can be used for supporting a custom serialization format.
type Reader interface {
	ReadUint8() (uint8, error)
	ReadString() (string, error)
	ReadValue() (interface{}, error)
}

// Note: The codes are part of the encoded format. Only ever append to this list.

const (
	codeAdd uint8 = iota
	codeRemove
	codeReplace
	codeCopy
	codeMove
	codeTest
)

// ReadFrom reads a single operation.
func ReadFrom(r Reader) (Op, error) {
	code, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	op, err := readOp(r, code)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return op, err
}

func readOp(r Reader, code uint8) (Op, error) {
	switch code {
	case codeAdd:
		path, value, err := readPathValue(r)
		if err != nil {
			return nil, err
		}
		return OpAdd{Path: path, Value: value}, nil
	case codeRemove:
		path, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return OpRemove{Path: path}, nil
	case codeReplace:
		path, value, err := readPathValue(r)
		if err != nil {
			return nil, err
		}
		return OpReplace{Path: path, Value: value}, nil
	case codeCopy:
		from, path, err := readFromPath(r)
		if err != nil {
			return nil, err
		}
		return OpCopy{From: from, Path: path}, nil
	case codeMove:
		from, path, err := readFromPath(r)
		if err != nil {
			return nil, err
		}
		return OpMove{From: from, Path: path}, nil
	case codeTest:
		path, value, err := readPathValue(r)
		if err != nil {
			return nil, err
		}
		return OpTest{Path: path, Value: value}, nil
	default:
		return nil, fmt.Errorf("unknown code: %d", code)
	}
}

func readPathValue(r Reader) (string, interface{}, error) {
	path, err := r.ReadString()
	if err != nil {
		return "", nil, err
	}
	value, err := r.ReadValue()
	if err != nil {
		return "", nil, err
	}
	value, err = Normalize(value)
	if err != nil {
		return "", nil, err
	}
	return path, value, nil
}

func readFromPath(r Reader) (string, string, error) {
	from, err := r.ReadString()
	if err != nil {
		return "", "", err
	}
	path, err := r.ReadString()
	if err != nil {
		return "", "", err
	}
	return from, path, nil
}

// WriteTo writes a single operation to a writer.
func WriteTo(w Writer, op Op) error {
	switch op := op.(type) {
	case OpAdd:
		return writePathValue(w, codeAdd, op.Path, op.Value)
	case OpRemove:
		if err := w.WriteUint8(codeRemove); err != nil {
			return err
		}
		return w.WriteString(op.Path)
	case OpReplace:
		return writePathValue(w, codeReplace, op.Path, op.Value)
	case OpCopy:
		return writeFromPath(w, codeCopy, op.From, op.Path)
	case OpMove:
		return writeFromPath(w, codeMove, op.From, op.Path)
	case OpTest:
		return writePathValue(w, codeTest, op.Path, op.Value)
	default:
		return fmt.Errorf("unknown op: %T", op)
	}
}

func writePathValue(w Writer, code uint8, path string, value interface{}) error {
	if err := w.WriteUint8(code); err != nil {
		return err
	}
	if err := w.WriteString(path); err != nil {
		return err
	}
	return w.WriteValue(value)
}

func writeFromPath(w Writer, code uint8, from, path string) error {
	if err := w.WriteUint8(code); err != nil {
		return err
	}
	if err := w.WriteString(from); err != nil {
		return err
	}
	return w.WriteString(path)
}

// Decode reads operations until the reader is exhausted. The reader must return io.EOF
// from ReadUint8 once there are no more operations.
func (patch *Patch) Decode(r Reader) error {
	for {
		op, err := ReadFrom(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		*patch = append(*patch, op)
	}
}

// Encode writes every operation of the patch.
func (patch Patch) Encode(w Writer) error {
	for _, op := range patch {
		if err := WriteTo(w, op); err != nil {
			return err
		}
	}
	return nil
}
