package blockfeed

import "context"

// Numeric fields are kept as float64: the endpoint only promises JSON numbers,
// which may be fractional or exceed 32 bits.

// Output is a single value transferred by a transaction, in BTC.
type Output struct {
	Value float64
}

// Transaction is a versioned record holding a list of outputs.
type Transaction struct {
	Version float64
	Outputs []Output
}

// Block is a mined block as served by the block list endpoint.
//
// Blocks carry no stable identity of their own inside a delivery: their
// position in the list is what consumers number and key them by.
type Block struct {
	Timestamp    string
	Nonce        float64
	Difficulty   float64
	Hash         string
	Transactions []Transaction
}

// Source produces the current list of blocks.
type Source interface {
	// FetchBlocks retrieves the full block list in server order.
	// It returns an error if the request fails or the payload does not
	// match the expected shape.
	FetchBlocks(ctx context.Context) ([]Block, error)
}
