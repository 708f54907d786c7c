/*
Package hooks implements the two hook pipelines of the account.

Validation hooks run before signature dispatch and can veto a
transaction. Execution hooks wrap the side effecting call: their
BeforeExecution phases run in installation order, the inner call
follows, and the AfterExecution phases unwind in reverse order like
nested scopes.

Both pipelines are ordered registries with a fixed capacity. The
stored order is the execution order, always.
*/
package hooks
