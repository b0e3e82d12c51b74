package shredder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgumentCountPrimitives(t *testing.T) {
	require.Equal(t, 3, ArgumentCount("(III)V"))
}

func TestArgumentCountWideTypesCountTwo(t *testing.T) {
	require.Equal(t, 4, ArgumentCount("(DJ)V"))
}

func TestArgumentCountReferenceType(t *testing.T) {
	require.Equal(t, 1, ArgumentCount("(Ljava/lang/String;)V"))
}

func TestArgumentCountArrayType(t *testing.T) {
	require.Equal(t, 2, ArgumentCount("([I[[Ljava/lang/String;)V"))
}

func TestArgumentCountNoArgs(t *testing.T) {
	require.Equal(t, 0, ArgumentCount("()V"))
}

func TestArgumentCountMixed(t *testing.T) {
	require.Equal(t, 6, ArgumentCount("(IJLjava/lang/Object;D)V"))
}
