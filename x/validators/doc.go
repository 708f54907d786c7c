/*
Package validators maintains the two named sets of pluggable
signature verifiers of the account.

The native set (scheme A) verifies by recovering the signer identity
from a compact signature; it is the account's recovery path and must
always keep at least one member. The external set (scheme B) delegates
verification to an installed extension and accepts a fixed magic
return value as success.

Both sets are mutated only through the account's authorization
predicate and are read on every transaction.
*/
package validators
