package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFailureHidesCause(t *testing.T) {
	cause := fmt.Errorf("get order 7: %w", ErrOrderNotFound)
	f := NewFailure(KindTransport, "Não foi possível carregar os dados do pedido para edição.", cause)

	require.Equal(t, "Não foi possível carregar os dados do pedido para edição.", f.Error())
	require.ErrorIs(t, f, ErrOrderNotFound)
	require.NotContains(t, f.Error(), "order not found")
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewFailure(KindPersist, "x", nil))

	require.True(t, IsKind(err, KindPersist))
	require.False(t, IsKind(err, KindTransport))
	require.False(t, IsKind(errors.New("plain"), KindPersist))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "validation", KindValidation.String())
	require.Equal(t, "transport", KindTransport.String())
	require.Equal(t, "persist", KindPersist.String())
	require.Equal(t, "unknown", Kind(42).String())
}
