package model

// ProductStock is the stock-relevant subset of a catalog product. All mutation
// of these counters goes through the stock ledger in storage.
type ProductStock struct {
	ProductID     string
	StockQuantity int
	SalesCount    int
}
