package blockview

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gabapcia/blockview/internal/blockfeed"
)

const (
	showTransactionsLabel = "[Show Transactions]"
	hideTransactionsLabel = "[Hide Transactions]"
)

// Card renders one block. Its expanded flag starts closed and belongs to
// this card alone.
//
// Card is not safe for concurrent use. Cards owned by a View must only be
// toggled through View.Toggle or View.ExpandAll, which hold the view lock.
type Card struct {
	block    blockfeed.Block
	expanded bool
}

// NewCard returns a closed card for block.
func NewCard(block blockfeed.Block) *Card {
	return &Card{block: block}
}

// Toggle flips the card between closed and expanded.
func (c *Card) Toggle() {
	c.expanded = !c.expanded
}

// Expanded reports whether transaction details are shown.
func (c *Card) Expanded() bool {
	return c.expanded
}

// Render writes the card as "Block <number>" followed by its fields. The
// transaction list is written only while the card is expanded.
func (c *Card) Render(w io.Writer, number int) error {
	p := &printer{w: w}

	p.printf("Block %d\n", number)
	p.printf("Mined On: %s\n", c.block.Timestamp)
	p.printf("Nonce: %s\n", formatValue(c.block.Nonce))
	p.printf("Difficulty: %s\n", formatValue(c.block.Difficulty))
	p.printf("Block Hash: %s\n", c.block.Hash)

	if !c.expanded {
		p.printf("%s\n", showTransactionsLabel)
		return p.err
	}

	p.printf("%s\n", hideTransactionsLabel)
	p.printf("Transactions\n")
	for _, tx := range c.block.Transactions {
		p.printf("  Transaction Version: %s\n", formatValue(tx.Version))
		p.printf("  Outputs:\n")
		for i, out := range tx.Outputs {
			p.printf("    Output %d: %s BTC\n", i+1, formatValue(out.Value))
		}
	}

	return p.err
}

// formatValue prints v in its shortest decimal form without an exponent:
// 0.5, 1, 0.00012, 4294967296.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// printer stops writing after the first error and keeps it.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
