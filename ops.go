package dandy

// OpType is the value of the "op" member of a JSON Patch operation.
type OpType string

const (
	TypeAdd     OpType = "add"
	TypeRemove  OpType = "remove"
	TypeReplace OpType = "replace"
	TypeCopy    OpType = "copy"
	TypeMove    OpType = "move"
	TypeTest    OpType = "test"
)

//go-sumtype:decl Op

// Op is a single JSON Patch (RFC 6902) operation. Paths are JSON Pointers.
type Op interface {
	isOp()
	Type() OpType
	Pointer() string
}

// Patch is an ordered list of operations.
type Patch []Op

type OpAdd struct {
	Path  string
	Value interface{}
}

type OpRemove struct {
	Path string
}

type OpReplace struct {
	Path  string
	Value interface{}
}

type OpCopy struct {
	From string
	Path string
}

type OpMove struct {
	From string
	Path string
}

// OpTest is part of the patch format but is never produced by Diff.
type OpTest struct {
	Path  string
	Value interface{}
}

// isOp() implementations:
func (OpAdd) isOp()     {}
func (OpRemove) isOp()  {}
func (OpReplace) isOp() {}
func (OpCopy) isOp()    {}
func (OpMove) isOp()    {}
func (OpTest) isOp()    {}

func (OpAdd) Type() OpType     { return TypeAdd }
func (OpRemove) Type() OpType  { return TypeRemove }
func (OpReplace) Type() OpType { return TypeReplace }
func (OpCopy) Type() OpType    { return TypeCopy }
func (OpMove) Type() OpType    { return TypeMove }
func (OpTest) Type() OpType    { return TypeTest }

func (op OpAdd) Pointer() string     { return op.Path }
func (op OpRemove) Pointer() string  { return op.Path }
func (op OpReplace) Pointer() string { return op.Path }
func (op OpCopy) Pointer() string    { return op.Path }
func (op OpMove) Pointer() string    { return op.Path }
func (op OpTest) Pointer() string    { return op.Path }

// source returns the "from" pointer of copy and move operations.
func source(op Op) (string, bool) {
	switch op := op.(type) {
	case OpCopy:
		return op.From, true
	case OpMove:
		return op.From, true
	}
	return "", false
}

// payload returns the "value" member of add, replace and test operations.
func payload(op Op) (interface{}, bool) {
	switch op := op.(type) {
	case OpAdd:
		return op.Value, true
	case OpReplace:
		return op.Value, true
	case OpTest:
		return op.Value, true
	}
	return nil, false
}
