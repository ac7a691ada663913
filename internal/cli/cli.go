// Package cli implements the interactive storefront menu. It renders the
// catalog, resolves user-facing 1-based indices back to products, collects
// order lines, and prints domain results and errors verbatim. All input and
// output flow through injected reader/writer so the loop is testable
// without a terminal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/domain/product"
	"storefront/internal/domain/store"
)

// CLI drives the interactive menu over a store.
type CLI struct {
	store *store.Store
	in    *bufio.Scanner
	out   io.Writer
	lg    *zap.Logger
}

// New creates a CLI reading commands from in and writing output to out.
func New(s *store.Store, in io.Reader, out io.Writer, lg *zap.Logger) *CLI {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &CLI{
		store: s,
		in:    bufio.NewScanner(in),
		out:   out,
		lg:    lg,
	}
}

// Run executes the menu loop until the user quits, input ends, or the
// context is cancelled.
func (c *CLI) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		choice, ok := c.readLine("Please choose a number: ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			c.printProducts()
		case "2":
			fmt.Fprintf(c.out, "Total of %d items in store\n", c.store.TotalStockCount())
		case "3":
			c.makeOrder()
		case "4":
			c.lg.Info("session ended by user")
			return nil
		default:
			fmt.Fprintln(c.out, "Error with your choice! Try again!")
		}
		fmt.Fprintln(c.out)
	}
}

func (c *CLI) printMenu() {
	fmt.Fprintln(c.out, "\tStore Menu")
	fmt.Fprintln(c.out, "\t----------")
	fmt.Fprintln(c.out, "1. List all products in store")
	fmt.Fprintln(c.out, "2. Show total amount in store")
	fmt.Fprintln(c.out, "3. Make an order")
	fmt.Fprintln(c.out, "4. Quit")
}

func (c *CLI) printProducts() {
	fmt.Fprintln(c.out, "----------")
	for i, p := range c.store.ListActive() {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, p.Describe())
	}
	fmt.Fprintln(c.out, "----------")
}

// makeOrder collects (product, quantity) lines until the user submits an
// empty line, then places the order and prints the receipt or the error.
func (c *CLI) makeOrder() {
	c.printProducts()
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "When you want to finish order, enter empty text.")

	// Snapshot so indices stay stable while the order is being built.
	active := c.store.ListActive()

	var lines []store.Line
	for {
		p, ok := c.readProduct(active)
		if !ok {
			break
		}
		quantity, ok := c.readQuantity()
		if !ok {
			break
		}
		lines = append(lines, store.Line{Product: p, Quantity: quantity})
		fmt.Fprintln(c.out, "Product added to list!")
		fmt.Fprintln(c.out)
	}

	if len(lines) == 0 {
		return
	}
	receipt, err := c.store.Order(lines)
	if err != nil {
		fmt.Fprintf(c.out, "Error while making order! %s\n", err)
		return
	}
	fmt.Fprintln(c.out, receipt)
}

// readProduct prompts for a 1-based catalog index until it gets a valid one
// or an empty line. Reports false when the order entry should stop.
func (c *CLI) readProduct(active []*product.Product) (*product.Product, bool) {
	for {
		raw, ok := c.readLine("Which product # do you want? ")
		if !ok || strings.TrimSpace(raw) == "" {
			return nil, false
		}
		index, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || index < 1 || index > len(active) {
			fmt.Fprintf(c.out, "Only numbers between 1-%d are allowed!\nPlease try again!\n", len(active))
			continue
		}
		p := active[index-1]
		if !p.IsActive() {
			fmt.Fprintf(c.out, "There are no %s left. Try another product\n", p.Name())
			continue
		}
		return p, true
	}
}

// readQuantity prompts for a positive unit count until it gets one or an
// empty line.
func (c *CLI) readQuantity() (int, bool) {
	for {
		raw, ok := c.readLine("What amount do you want? ")
		if !ok || strings.TrimSpace(raw) == "" {
			return 0, false
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || quantity < 1 {
			fmt.Fprintln(c.out, "Only positive numbers are allowed")
			continue
		}
		return quantity, true
	}
}

// readLine prints the prompt and reads one input line. Reports false on end
// of input.
func (c *CLI) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}
