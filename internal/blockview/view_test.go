package blockview

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/gabapcia/blockview/internal/blockfeed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeBlocks builds n distinct blocks with one transaction each.
func makeBlocks(n int) []blockfeed.Block {
	blocks := make([]blockfeed.Block, n)
	for i := range blocks {
		blocks[i] = blockfeed.Block{
			Timestamp:  fmt.Sprintf("2024-01-0%dT00:00:00Z", i+1),
			Nonce:      float64(i),
			Difficulty: 1,
			Hash:       fmt.Sprintf("%02x", i+1),
			Transactions: []blockfeed.Transaction{{
				Version: float64(i + 1),
				Outputs: []blockfeed.Output{{Value: float64(i) + 0.5}},
			}},
		}
	}
	return blocks
}

func renderView(t *testing.T, v *View) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf))
	return buf.String()
}

func TestView_New(t *testing.T) {
	v := New()

	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Blocks())
	assert.Equal(t, Title+"\n", renderView(t, v))
}

func TestView_Render(t *testing.T) {
	t.Run("one card per block numbered in order", func(t *testing.T) {
		blocks := makeBlocks(3)
		v := New()
		v.Replace(blocks)

		out := renderView(t, v)

		assert.Equal(t, 3, v.Len())
		assert.Equal(t, 3, strings.Count(out, "Block Hash: "))
		first := strings.Index(out, "Block 1\n")
		second := strings.Index(out, "Block 2\n")
		third := strings.Index(out, "Block 3\n")
		require.True(t, first >= 0 && second > first && third > second, out)
		assert.NotContains(t, out, "Block 4")

		assert.Less(t, strings.Index(out, "Block Hash: 01"), second)
		assert.Greater(t, strings.Index(out, "Block Hash: 03"), third)
	})

	t.Run("no details before any toggle", func(t *testing.T) {
		v := New()
		v.Replace(makeBlocks(4))

		out := renderView(t, v)

		assert.NotContains(t, out, "Transaction Version")
		assert.NotContains(t, out, "Output 1")
		assert.Equal(t, 4, strings.Count(out, showTransactionsLabel))
	})

	t.Run("end to end example", func(t *testing.T) {
		v := New()
		v.Replace([]blockfeed.Block{exampleBlock})

		out := renderView(t, v)
		for _, line := range []string{
			"Block 1",
			"Mined On: 2024-01-01T00:00:00Z",
			"Nonce: 42",
			"Difficulty: 1",
			"Block Hash: abc123",
		} {
			assert.Contains(t, out, line+"\n")
		}
		assert.NotContains(t, out, "Transaction Version: 1")

		require.NoError(t, v.Toggle(1))

		out = renderView(t, v)
		assert.Contains(t, out, "Transaction Version: 1\n")
		assert.Contains(t, out, "Output 1: 0.5 BTC\n")
	})
}

func TestView_Toggle(t *testing.T) {
	t.Run("only the toggled card changes", func(t *testing.T) {
		v := New()
		v.Replace(makeBlocks(3))

		require.NoError(t, v.Toggle(2))

		assert.False(t, v.cards[0].Expanded())
		assert.True(t, v.cards[1].Expanded())
		assert.False(t, v.cards[2].Expanded())

		out := renderView(t, v)
		assert.Equal(t, 1, strings.Count(out, hideTransactionsLabel))
		assert.Contains(t, out, "Transaction Version: 2\n")
		assert.NotContains(t, out, "Transaction Version: 1\n")
		assert.NotContains(t, out, "Transaction Version: 3\n")
	})

	t.Run("toggle twice restores the initial rendering", func(t *testing.T) {
		v := New()
		v.Replace(makeBlocks(2))
		initial := renderView(t, v)

		require.NoError(t, v.Toggle(1))
		require.NoError(t, v.Toggle(1))

		assert.Equal(t, initial, renderView(t, v))
	})

	t.Run("out of range", func(t *testing.T) {
		v := New()
		v.Replace(makeBlocks(2))

		assert.ErrorIs(t, v.Toggle(0), ErrCardNotFound)
		assert.ErrorIs(t, v.Toggle(3), ErrCardNotFound)
		assert.ErrorIs(t, v.Toggle(-1), ErrCardNotFound)
	})

	t.Run("empty view", func(t *testing.T) {
		assert.ErrorIs(t, New().Toggle(1), ErrCardNotFound)
	})
}

func TestView_ExpandAll(t *testing.T) {
	v := New()
	v.Replace(makeBlocks(3))
	require.NoError(t, v.Toggle(2))

	v.ExpandAll()

	for i, card := range v.cards {
		assert.True(t, card.Expanded(), "card %d", i+1)
	}
}

func TestView_Replace(t *testing.T) {
	t.Run("replaces the list wholesale", func(t *testing.T) {
		v := New()
		v.Replace(makeBlocks(3))

		next := makeBlocks(1)
		v.Replace(next)

		assert.Equal(t, next, v.Blocks())
	})

	t.Run("positional key keeps state by position", func(t *testing.T) {
		blocks := makeBlocks(3)
		v := New()
		v.Replace(blocks)
		require.NoError(t, v.Toggle(1))

		// Server prepends a block: position 1 now shows a different block.
		v.Replace(append([]blockfeed.Block{{Hash: "ff", Transactions: []blockfeed.Transaction{}}}, blocks...))

		assert.True(t, v.cards[0].Expanded())
		assert.Equal(t, "ff", v.cards[0].block.Hash)
		assert.False(t, v.cards[1].Expanded())
		assert.False(t, v.cards[3].Expanded(), "new positions start closed")
	})

	t.Run("hash key keeps state with the block", func(t *testing.T) {
		blocks := makeBlocks(3)
		v := New(WithCardKey(HashKey))
		v.Replace(blocks)
		require.NoError(t, v.Toggle(1))

		v.Replace(append([]blockfeed.Block{{Hash: "ff", Transactions: []blockfeed.Transaction{}}}, blocks...))

		assert.False(t, v.cards[0].Expanded())
		assert.True(t, v.cards[1].Expanded())
		assert.Equal(t, blocks[0].Hash, v.cards[1].block.Hash)
	})

	t.Run("duplicate keys get independent cards", func(t *testing.T) {
		v := New(WithCardKey(HashKey))
		v.Replace([]blockfeed.Block{{Hash: "aa"}})
		require.NoError(t, v.Toggle(1))

		v.Replace([]blockfeed.Block{{Hash: "aa"}, {Hash: "aa"}})
		require.NoError(t, v.Toggle(2))

		assert.True(t, v.cards[0].Expanded())
		assert.True(t, v.cards[1].Expanded())
		assert.NotSame(t, v.cards[0], v.cards[1])

		require.NoError(t, v.Toggle(1))
		assert.False(t, v.cards[0].Expanded())
		assert.True(t, v.cards[1].Expanded())
	})
}

func TestKeyFuncs(t *testing.T) {
	b := blockfeed.Block{Hash: "abc123"}

	assert.Equal(t, "4", PositionKey(4, b))
	assert.Equal(t, "abc123", HashKey(4, b))
}
