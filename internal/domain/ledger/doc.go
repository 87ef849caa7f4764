/*
Package ledger holds the loan ledger arithmetic: calendar-day normalization,
the payment waterfall, penalty settlement and the status decision table.

Nothing here touches storage or the clock. Callers load a loan's payments and
penalties, pass them in with "now", and persist whatever comes back. All
amounts stay full-precision decimals; rounding to cents is a presentation
concern.
*/
package ledger
