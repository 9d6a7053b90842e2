package cryptoledger

// Transaction constructors shared by the package tests. All are priced in
// USD; tests that need another currency build the Transaction directly.

func testTx(typ TxType, id, day, symbol string, qty, price float64) Transaction {
	return Transaction{
		ID:       id,
		Type:     typ,
		Symbol:   symbol,
		Quantity: Q(qty),
		Price:    M(price, "USD"),
		Date:     MustParseDate(day),
	}
}

func testBuy(id, day, symbol string, qty, price float64) Transaction {
	return testTx(TxBuy, id, day, symbol, qty, price)
}

func testSell(id, day, symbol string, qty, price float64) Transaction {
	return testTx(TxSell, id, day, symbol, qty, price)
}
