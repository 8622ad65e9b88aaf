// Package vm implements the stack-based virtual machine that executes a
// compiled chunk.Chunk: fetch, decode, dispatch, repeat.
package vm

import (
	"fmt"
	"io"
	"os"

	"ember/chunk"
	"ember/value"

	"github.com/sirupsen/logrus"
)

// InterpretResult mirrors clox's exit-code contract: OK maps to a process
// exit code of 0, CompileError to 65, RuntimeError to 70.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

// VM is the runtime that executes chunk.Chunk bytecode.
type VM struct {
	chunk *chunk.Chunk
	ip    int
	stack Stack

	// Trace, when true, logs the operand stack and the instruction about
	// to execute before every dispatch - the VM's equivalent of
	// compiler's panic-mode diagnostics, routed through the same logger.
	Trace bool
	log   *logrus.Logger

	Out io.Writer
}

// New constructs a VM. log receives trace output when Trace is enabled;
// pass nil to use a default logger writing to stderr. capacity sizes the
// operand stack's initial backing array (config.Config.StackCapacity); the
// stack still grows past it on demand via Go's slice append.
func New(log *logrus.Logger, capacity int) *VM {
	if log == nil {
		log = logrus.New()
	}
	return &VM{
		stack: make(Stack, 0, capacity),
		log:   log,
		Out:   os.Stdout,
	}
}

// Run executes c on the VM, returning a result code for the caller to turn
// into a process exit status, and an error describing what went wrong (nil
// on InterpretOK).
func (vm *VM) Run(c *chunk.Chunk) (result InterpretResult, err error) {
	vm.chunk = c
	vm.ip = 0

	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case RuntimeError:
				result, err = InterpretRuntimeError, v
			default:
				panic(r)
			}
		}
	}()

	for vm.ip < len(vm.chunk.Code) {
		if vm.Trace {
			vm.traceStep()
		}
		vm.step()
	}
	return InterpretOK, nil
}

func (vm *VM) traceStep() {
	var stackDump string
	for _, v := range vm.stack {
		stackDump += fmt.Sprintf("[ %s ]", v.String())
	}
	vm.log.Infoln(stackDump)
	line, _ := vm.chunk.DisassembleInstruction(vm.ip)
	vm.log.Infoln(line)
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) push(v value.Value) {
	vm.stack.Push(v)
}

func (vm *VM) pop() value.Value {
	v, ok := vm.stack.Pop()
	if !ok {
		panic(InternalError{Message: "stack underflow"})
	}
	return v
}

// currentLine looks up the source line of the instruction just consumed,
// for attaching to a runtime error.
func (vm *VM) currentLine() int {
	if vm.ip-1 < len(vm.chunk.Lines) && vm.ip-1 >= 0 {
		return vm.chunk.Lines[vm.ip-1]
	}
	return -1
}

func (vm *VM) runtimeError(format string, args ...any) {
	panic(RuntimeError{Line: vm.currentLine(), Message: fmt.Sprintf(format, args...)})
}

// step decodes and executes exactly one instruction.
func (vm *VM) step() {
	op := chunk.OpCode(vm.readByte())

	switch op {
	case chunk.OP_CONSTANT:
		idx := vm.readByte()
		vm.push(vm.chunk.Constants.Get(idx))

	case chunk.OP_NIL:
		vm.push(value.Nil)
	case chunk.OP_TRUE:
		vm.push(value.Bool(true))
	case chunk.OP_FALSE:
		vm.push(value.Bool(false))

	case chunk.OP_NEGATE:
		operand := vm.pop()
		if !operand.IsNumber() {
			vm.runtimeError("Operand must be a number.")
		}
		vm.push(value.Number(-operand.AsNumber()))

	case chunk.OP_NOT:
		operand := vm.pop()
		vm.push(value.Bool(operand.Falsy()))

	case chunk.OP_ADD:
		b, a := vm.pop(), vm.pop()
		switch {
		case a.IsNumber() && b.IsNumber():
			vm.push(value.Number(a.AsNumber() + b.AsNumber()))
		case a.IsString() && b.IsString():
			vm.push(value.String(a.AsString() + b.AsString()))
		default:
			vm.runtimeError("Operands must be two numbers or two strings.")
		}

	case chunk.OP_SUBTRACT:
		b, a := vm.pop(), vm.pop()
		vm.requireNumbers(a, b)
		vm.push(value.Number(a.AsNumber() - b.AsNumber()))

	case chunk.OP_MULTIPLY:
		b, a := vm.pop(), vm.pop()
		vm.requireNumbers(a, b)
		vm.push(value.Number(a.AsNumber() * b.AsNumber()))

	case chunk.OP_DIVIDE:
		b, a := vm.pop(), vm.pop()
		vm.requireNumbers(a, b)
		vm.push(value.Number(a.AsNumber() / b.AsNumber()))

	case chunk.OP_EQUAL:
		b, a := vm.pop(), vm.pop()
		vm.push(value.Bool(value.Equal(a, b)))

	case chunk.OP_GREATER:
		b, a := vm.pop(), vm.pop()
		vm.requireNumbers(a, b)
		vm.push(value.Bool(a.AsNumber() > b.AsNumber()))

	case chunk.OP_LESS:
		b, a := vm.pop(), vm.pop()
		vm.requireNumbers(a, b)
		vm.push(value.Bool(a.AsNumber() < b.AsNumber()))

	case chunk.OP_PRINT:
		fmt.Fprintln(vm.Out, vm.pop().String())

	case chunk.OP_RETURN:
		// CORE programs end here; nothing left to do but stop the loop by
		// letting ip reach len(Code).

	default:
		panic(InternalError{Message: fmt.Sprintf("unknown opcode %d at offset %d", op, vm.ip-1)})
	}
}

func (vm *VM) requireNumbers(a, b value.Value) {
	if !a.IsNumber() || !b.IsNumber() {
		vm.runtimeError("Operands must be numbers.")
	}
}
