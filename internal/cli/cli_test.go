package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/and161185/pedidos/internal/cli"
	"github.com/and161185/pedidos/internal/config"
	"github.com/and161185/pedidos/internal/deps"
	"github.com/and161185/pedidos/internal/errs"
	"github.com/and161185/pedidos/internal/model"
	"github.com/and161185/pedidos/internal/server"
	"github.com/and161185/pedidos/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func startAPI(t *testing.T) (string, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	srv := server.NewServer(store, config.Default(), deps.NewDependencies(zaptest.NewLogger(t).Sugar()))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL, store
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "fatal"))
	err := cmd.Execute()
	return buf.String(), err
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(model.DateLayout)
}

func createArgs(api string, extra ...string) []string {
	args := []string{
		"create", "--api", api,
		"--produto", "Bolo de cenoura",
		"--quantidade", "2",
		"--valor-total", "100",
		"--sinal", "30",
		"--cliente", "Ana",
		"--contato", "11 99999-0000",
		"--data", tomorrow(),
		"--hora", "14:00",
	}
	return append(args, extra...)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pedidos dev")
}

func TestCreateCommand(t *testing.T) {
	api, store := startAPI(t)

	out, err := run(t, "", createArgs(api)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Pedido criado com sucesso")
	assert.Contains(t, out, "Bolo de cenoura")

	count, _ := store.CountOrders(context.Background())
	assert.Equal(t, 1, count)
}

func TestCreateCommand_ValidationFailure(t *testing.T) {
	api, store := startAPI(t)

	out, err := run(t, "", createArgs(api, "--sinal", "10")...)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
	assert.Contains(t, out, "O valor do sinal deve ser pelo menos 20% do valor total")

	count, _ := store.CountOrders(context.Background())
	assert.Zero(t, count)
}

func TestCreateCommand_ServerDown(t *testing.T) {
	api, _ := startAPI(t)
	down := httptest.NewServer(nil)
	downURL := down.URL
	down.Close()

	out, err := run(t, "", createArgs(api, "--api", downURL, "--timeout", "1s")...)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindPersist))
	assert.Contains(t, out, "Não foi possível salvar o pedido")
}

func TestListCommand_JSON(t *testing.T) {
	api, _ := startAPI(t)

	_, err := run(t, "", createArgs(api)...)
	require.NoError(t, err)

	out, err := run(t, "", "list", "--api", api, "--json")
	require.NoError(t, err)

	var orders []model.Order
	require.NoError(t, json.Unmarshal([]byte(out), &orders), out)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ana", orders[0].NomeCliente)
}

func TestListCommand_JSONFailureAlerts(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	cmd := cli.NewRootCmdForTest()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"list", "--json", "--api", broken.URL, "--log-level", "fatal"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindTransport))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Não foi possível carregar os pedidos.")
}

func TestListCommand_PastEmpty(t *testing.T) {
	api, _ := startAPI(t)

	out, err := run(t, "", "list", "--api", api, "--past")
	require.NoError(t, err)
	assert.Contains(t, out, "Pedidos antigos")
	assert.Contains(t, out, "Nenhum pedido encontrado.")
}

func TestEditCommand(t *testing.T) {
	api, store := startAPI(t)
	ctx := context.Background()

	_, err := run(t, "", createArgs(api)...)
	require.NoError(t, err)

	out, err := run(t, "", "edit", "1", "--api", api, "--produto", "Torta de limão")
	require.NoError(t, err)
	assert.Contains(t, out, "Pedido atualizado com sucesso")

	got, err := store.GetOrder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Torta de limão", got.Produto)
	assert.Equal(t, "Ana", got.NomeCliente)
}

func TestEditCommand_NotFound(t *testing.T) {
	api, _ := startAPI(t)

	_, err := run(t, "", "edit", "42", "--api", api)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindTransport))
}

func TestDeleteCommand(t *testing.T) {
	api, store := startAPI(t)
	ctx := context.Background()

	_, err := run(t, "", createArgs(api)...)
	require.NoError(t, err)

	out, err := run(t, "n\n", "delete", "1", "--api", api)
	require.NoError(t, err)
	assert.Contains(t, out, "Exclusão cancelada.")
	count, _ := store.CountOrders(ctx)
	assert.Equal(t, 1, count)

	_, err = run(t, "s\n", "delete", "1", "--api", api)
	require.NoError(t, err)
	count, _ = store.CountOrders(ctx)
	assert.Zero(t, count)
}

func TestDeleteCommand_Yes(t *testing.T) {
	api, store := startAPI(t)

	_, err := run(t, "", createArgs(api)...)
	require.NoError(t, err)

	_, err = run(t, "", "delete", "1", "--api", api, "--yes")
	require.NoError(t, err)

	count, _ := store.CountOrders(context.Background())
	assert.Zero(t, count)
}

func TestDeleteCommand_InvalidID(t *testing.T) {
	_, err := run(t, "", "delete", "abc")
	assert.Error(t, err)
}
