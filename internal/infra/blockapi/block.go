package blockapi

import "github.com/gabapcia/blockview/internal/blockfeed"

// The wire types use pointers so that a missing field can be told apart from
// a zero or empty value. Validation checks presence only: any string and any
// number are accepted as served.
type (
	// OutputResponse is a transaction output as served by the endpoint.
	OutputResponse struct {
		Value *float64 `json:"value" validate:"required"`
	}

	// TransactionResponse is a transaction as served by the endpoint.
	TransactionResponse struct {
		Version *float64         `json:"version" validate:"required"`
		Outputs []OutputResponse `json:"outputs" validate:"required,dive"`
	}

	// BlockResponse is a block as served by the endpoint.
	BlockResponse struct {
		Timestamp    *string               `json:"timestamp" validate:"required"`
		Nonce        *float64              `json:"nonce" validate:"required"`
		Difficulty   *float64              `json:"difficulty" validate:"required"`
		Hash         *string               `json:"hash" validate:"required"`
		Transactions []TransactionResponse `json:"transactions" validate:"required,dive"`
	}

	// blockListResponse wraps the top-level array so it can be validated as
	// a struct.
	blockListResponse struct {
		Blocks []BlockResponse `validate:"dive"`
	}
)

// toFeedTransaction converts a validated TransactionResponse.
func (t TransactionResponse) toFeedTransaction() blockfeed.Transaction {
	outputs := make([]blockfeed.Output, len(t.Outputs))
	for i, o := range t.Outputs {
		outputs[i] = blockfeed.Output{Value: *o.Value}
	}

	return blockfeed.Transaction{
		Version: *t.Version,
		Outputs: outputs,
	}
}

// toFeedBlock converts a validated BlockResponse.
func (b BlockResponse) toFeedBlock() blockfeed.Block {
	transactions := make([]blockfeed.Transaction, len(b.Transactions))
	for i, t := range b.Transactions {
		transactions[i] = t.toFeedTransaction()
	}

	return blockfeed.Block{
		Timestamp:    *b.Timestamp,
		Nonce:        *b.Nonce,
		Difficulty:   *b.Difficulty,
		Hash:         *b.Hash,
		Transactions: transactions,
	}
}
