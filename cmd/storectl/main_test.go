package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t      *testing.T
	dbPath string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, dbPath: filepath.Join(t.TempDir(), "store.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--storage", "sqlite", "--sqlite-path", c.dbPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCustomerCommands(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("customer", "register", "--name", "Amina Njeri", "--email", "amina@example.com", "--age", "28", "--membership", "premium")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Amina Njeri")
	assert.Contains(t, out, "PREMIUM (10% discount)")
	assert.Contains(t, out, "Perfect age for building healthy eating habits!")

	_, err = c.run("customer", "register", "--name", "Baraka", "--email", "not-an-email", "--age", "40", "--membership", "gold")
	require.EqualError(t, err, "Please enter a valid email address")

	out, err = c.run("-o", "json", "customer", "list")
	require.NoError(t, err)
	var listed struct {
		Customers []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"customers"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed.Customers, 1)
	assert.Equal(t, int64(1), listed.Total)

	out, err = c.run("customer", "get", listed.Customers[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "amina@example.com")
	assert.Contains(t, out, "1 customer(s)")

	_, err = c.run("customer", "get", "12345")
	assert.EqualError(t, err, "Customer not found")
}

func TestProductCommands(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("product", "add", "--name", "Tomatoes", "--price", "120.5", "--quantity", "10", "--category", "Vegetables")
	require.NoError(t, err)
	assert.Equal(t, "Added Tomatoes (ID: PRD-0001) at KES 120.50, 10 in stock\n", out)

	_, err = c.run("product", "add", "--name", "Kale", "--price", "0", "--quantity", "3", "--category", "Vegetables")
	require.EqualError(t, err, "Please fill all product fields correctly")

	out, err = c.run("product", "add", "--name", "Bananas", "--price", "15", "--quantity", "40", "--category", "Fruits")
	require.NoError(t, err)
	assert.Contains(t, out, "PRD-0002")

	out, err = c.run("product", "list", "--category", "Fruits")
	require.NoError(t, err)
	assert.Contains(t, out, "Bananas")
	assert.NotContains(t, out, "Tomatoes")
	assert.Contains(t, out, "1 product(s)")

	out, err = c.run("product", "get", "PRD-0001")
	require.NoError(t, err)
	assert.Contains(t, out, "KES 120.50")
}

func TestStoreInfo(t *testing.T) {
	c := newCLI(t)
	fixture := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(fixture, []byte(`
customers:
  - {name: Amina, email: amina@example.com, age: "28", membership: basic}
products:
  - {name: Mangoes, price: "20", quantity: "0", category: Fruits}
`), 0o600))

	out, err := c.run("--seed", fixture, "store", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Customers: 1")
	assert.Contains(t, out, "Products: 1")
	assert.Contains(t, out, "GOLD")
	assert.Contains(t, out, "15%")
}

func TestInvalidOutputFormat(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("-o", "xml", "store", "info")

	assert.ErrorContains(t, err, "--output must be")
}
