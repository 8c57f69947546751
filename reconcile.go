package debtbook

// Reconcile clears, in both tables of every provisioned year ledger, every
// row keyed by a debt that is not in the register anymore. It is idempotent,
// order-independent, and safe to run after any edit: the ledgers come out
// garbage-free, and rows for live debts are never touched.
func (e *Engine) Reconcile() {
	valid := e.Register.ValidIDs()
	for _, ledger := range e.Store.Ledgers() {
		sweep(ledger.Issued, valid)
		sweep(ledger.Debts, valid)
	}
}

// sweep clears every row whose key is set but no longer valid.
func sweep(t *Table, valid map[string]bool) {
	for row := 0; row < t.Len(); row++ {
		key := t.Key(row)
		if key == "" || valid[key] {
			continue
		}
		t.ClearRow(row)
	}
}
