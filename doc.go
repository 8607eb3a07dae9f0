// Package billing tracks freelance clients, their billing rates over time,
// and the invoices generated for them.
//
// Nothing is stored directly: the set of clients is always derived by folding
// an append-only event log. Each event records one change to one client
// (creation, a rate or tax update, an invoice, a payment, removal), and the
// in-memory aggregates are disposable projections of that log.
package billing
