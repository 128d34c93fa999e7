package dandy

type Options struct {
	convertFunc func(value interface{}) interface{}
	reporter    Reporter
}

// Reporter observes the differ. Report is called after each operation has been emitted and
// applied to the working copy; doc is the working copy at that point and must not be modified.
type Reporter interface {
	Report(op Op, doc interface{})
}

// The default options.
var DefaultOptions = Options{}

// WithConvertFunc creates a new option object with a given convert function.
//
// The convert function is applied by Diff and ApplyPatch to every value it looks at.
// This can be used to support additional types by converting it into one of the supported types.
func (options Options) WithConvertFunc(convertFunc func(value interface{}) interface{}) Options {
	options.convertFunc = convertFunc
	return options
}

// WithReporter creates a new option object which reports every emitted operation.
func (options Options) WithReporter(reporter Reporter) Options {
	options.reporter = reporter
	return options
}
