package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardapio/internal/mockapi"
)

type cli struct {
	t    *testing.T
	srv  *mockapi.Server
	url  string
	home string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("CARDAPIO_SESSION_BACKEND", "file")
	t.Setenv("CARDAPIO_SESSION_PASSPHRASE", "")
	t.Setenv("CARDAPIO_RESTAURANT", "")
	t.Setenv("CARDAPIO_LOG_LEVEL", "error")

	srv := mockapi.New(nil)
	require.NoError(t, srv.Seed())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &cli{t: t, srv: srv, url: ts.URL, home: t.TempDir()}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--home", c.home, "--api", c.url}, args...))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func TestOrderingSession(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("menu", string(mockapi.DemoUsername))
	assert.Contains(t, out, "Burger House")
	assert.Contains(t, out, "[11] X-Burger  R$ 15.00")

	out = c.mustRun("cart", "add", "11", "--addon", "201", "--addon", "202")
	assert.Contains(t, out, "Added X-Burger (now 1x)")
	out = c.mustRun("cart", "add", "11")
	assert.Contains(t, out, "Total: R$ 35.00")

	_, err := c.run("cart", "add", "11", "--addon", "201", "--addon", "202", "--addon", "203")
	assert.Error(t, err, "third add-on exceeds the limit of 2")

	_, err = c.run("checkout")
	assert.Error(t, err, "not logged in")
	assert.Contains(t, c.mustRun("cart", "show"), "Total: R$ 35.00", "failed checkout keeps the cart")

	c.mustRun("login", "--email", mockapi.DemoEmail, "--password", mockapi.DemoPassword)
	assert.Contains(t, c.mustRun("whoami"), mockapi.DemoEmail)

	c.srv.FailOnce("/order", http.StatusInternalServerError, "database down")
	_, err = c.run("checkout")
	require.Error(t, err)
	assert.Equal(t, "database down (HTTP 500)", describe(err))
	assert.Contains(t, c.mustRun("cart", "show"), "Total: R$ 35.00")

	out = c.mustRun("checkout", "--note", "sem cebola")
	assert.Contains(t, out, "Order placed!")
	assert.Contains(t, out, "Note: sem cebola")
	assert.Contains(t, c.mustRun("cart", "show"), "Cart is empty.")

	out = c.mustRun("orders")
	assert.Contains(t, out, "R$ 35.00")

	c.mustRun("logout")
	assert.Contains(t, c.mustRun("whoami"), "Not logged in")
}

func TestRegisterNeedsMenuFirst(t *testing.T) {
	c := newCLI(t)
	args := []string{"register",
		"--name", "Ana", "--email", "ana@example.com", "--password", "segredo",
		"--street", "Rua A", "--number", "1", "--neighborhood", "Centro",
		"--city", "São Paulo", "--postal-code", "01000-000",
	}

	_, err := c.run(args...)
	require.Error(t, err)
	assert.Contains(t, describe(err), "load the menu first")

	c.mustRun("menu", string(mockapi.DemoUsername))
	assert.Contains(t, c.mustRun(args...), "Registered Ana")
	c.mustRun("login", "--email", "ana@example.com", "--password", "segredo")
}

func TestLoginValidation(t *testing.T) {
	c := newCLI(t)
	c.mustRun("menu", string(mockapi.DemoUsername))

	_, err := c.run("login", "--email", "nope")
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email; password is required", describe(err))
}
