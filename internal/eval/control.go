package eval

import "github.com/mwildehahn/monty/internal/value"

// signalKind distinguishes the three control-flow signals a statement
// can produce, kept entirely separate from exception propagation
// (*exception.Exception) since return/break/continue are not errors.
type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
	signalContinue
)

type signal struct {
	kind  signalKind
	value value.Value // meaningful only for signalReturn
}

var noSignal = signal{kind: signalNone}
