package vm

import (
	"bytes"
	"testing"

	"ember/compiler"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string) (string, error) {
	t.Helper()
	c, err := compiler.Compile(source)
	require.NoError(t, err)

	var out bytes.Buffer
	machine := New(nil, 256)
	machine.Out = &out
	_, runErr := machine.Run(c)
	return out.String(), runErr
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, "print(5 * 3 + 2);")
	require.NoError(t, err)
	require.Equal(t, "17\n", out)
}

func TestUnaryNegateAndNot(t *testing.T) {
	out, err := run(t, "print(!false);")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)

	out, err = run(t, "print(-2 + 5);")
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print("foo" + "bar");`)
	require.NoError(t, err)
	require.Equal(t, "foobar\n", out)
}

func TestComparisonOperators(t *testing.T) {
	out, err := run(t, "print(1 < 2);")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestDerivedComparisonsViaEqualAndNot(t *testing.T) {
	out, err := run(t, "print(1 != 2);")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)

	out, err = run(t, "print(2 >= 2);")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestNegatingNonNumberIsRuntimeError(t *testing.T) {
	_, err := run(t, `print(-"x");`)
	require.Error(t, err)
	require.IsType(t, RuntimeError{}, err)
	require.Contains(t, err.Error(), "Operand must be a number")
}

func TestAddingIncompatibleTypesIsRuntimeError(t *testing.T) {
	_, err := run(t, `print(1 + "x");`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Operands must be two numbers or two strings")
}

func TestSubtractingNonNumbersIsRuntimeError(t *testing.T) {
	_, err := run(t, `print(true - false);`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Operands must be numbers")
}

func TestVMIsReusableAcrossRuns(t *testing.T) {
	machine := New(nil, 256)
	var out bytes.Buffer
	machine.Out = &out

	c1, err := compiler.Compile("print(1);")
	require.NoError(t, err)
	_, err = machine.Run(c1)
	require.NoError(t, err)

	c2, err := compiler.Compile("print(2);")
	require.NoError(t, err)
	_, err = machine.Run(c2)
	require.NoError(t, err)

	require.Equal(t, "1\n2\n", out.String())
}
