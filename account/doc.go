/*
Package account ties the registries, the hook pipelines and the
signature codec into one aggregate: the authorization core of a
smart contract account.

The Account owns its store, its extension directory and its identity.
It exposes two transaction entry points, ValidateTx and Execute, plus
authorization gated facade methods over the validator, module and
hook registries. The bootloader drives the two entry points; nothing
else mutates account state.

Processing is strictly sequential: one operation runs to completion
before the next is considered, ordered across transactions by the
nonce counter. All-or-nothing semantics come from store savepoints,
not locks.
*/
package account
