// Package blockview holds the block list shown to the user and renders it as
// a sequence of cards, one per block, each with its own expand state.
//
// The list is replaced wholesale on every delivery. Card state survives a
// replacement when the new block maps to the same card key; by default the
// key is the block's position, so card N keeps its state whatever block
// lands at position N.
package blockview

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/gabapcia/blockview/internal/blockfeed"
)

// Title is the header written above the cards.
const Title = "Bitcoin Block Viewer"

// ErrCardNotFound is returned by Toggle for a number outside 1..Len().
var ErrCardNotFound = errors.New("card not found")

// KeyFunc derives the identity of the card showing block at index.
type KeyFunc func(index int, block blockfeed.Block) string

// PositionKey identifies cards by their position in the list.
func PositionKey(index int, _ blockfeed.Block) string {
	return strconv.Itoa(index)
}

// HashKey identifies cards by block hash, so expand state follows a block
// when the server reorders the list.
func HashKey(_ int, block blockfeed.Block) string {
	return block.Hash
}

// View owns the current block list and one Card per block.
type View struct {
	mu    sync.RWMutex
	cards []*Card
	keys  []string
	key   KeyFunc
}

type config struct {
	key KeyFunc
}

// Option configures a View.
type Option func(*config)

// WithCardKey sets how cards are matched across replacements.
// Default: PositionKey.
func WithCardKey(f KeyFunc) Option {
	return func(c *config) {
		c.key = f
	}
}

// New returns an empty view.
func New(opts ...Option) *View {
	cfg := config{key: PositionKey}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &View{key: cfg.key}
}

// Replace swaps the held list for blocks. Cards whose key appears in both
// lists keep their expand state; all others start closed.
func (v *View) Replace(blocks []blockfeed.Block) {
	v.mu.Lock()
	defer v.mu.Unlock()

	previous := make(map[string]*Card, len(v.cards))
	for i, card := range v.cards {
		previous[v.keys[i]] = card
	}

	cards := make([]*Card, len(blocks))
	keys := make([]string, len(blocks))
	for i, block := range blocks {
		keys[i] = v.key(i, block)

		card, ok := previous[keys[i]]
		if !ok {
			cards[i] = NewCard(block)
			continue
		}

		// A key is reused at most once, so duplicates get fresh cards.
		delete(previous, keys[i])
		card.block = block
		cards[i] = card
	}

	v.cards = cards
	v.keys = keys
}

// Toggle flips the card numbered n, counting from 1 as rendered.
func (v *View) Toggle(n int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n < 1 || n > len(v.cards) {
		return fmt.Errorf("%w: %d", ErrCardNotFound, n)
	}

	v.cards[n-1].Toggle()
	return nil
}

// ExpandAll opens every card.
func (v *View) ExpandAll() {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, card := range v.cards {
		card.expanded = true
	}
}

// Len returns the number of cards.
func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.cards)
}

// Blocks returns the held list in display order.
func (v *View) Blocks() []blockfeed.Block {
	v.mu.RLock()
	defer v.mu.RUnlock()

	blocks := make([]blockfeed.Block, len(v.cards))
	for i, card := range v.cards {
		blocks[i] = card.block
	}
	return blocks
}

// Render writes the title followed by every card, separated by blank lines.
func (v *View) Render(w io.Writer) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if _, err := fmt.Fprintf(w, "%s\n", Title); err != nil {
		return err
	}

	for i, card := range v.cards {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := card.Render(w, i+1); err != nil {
			return err
		}
	}

	return nil
}
