/*
Package soter is the authorization core of a smart-contract account:
it decides, for every inbound transaction, whether it is authentic and
permitted, and lets the account's security policy be extended at
runtime through pluggable validators, modules and hooks.

The root package defines the types shared by all subpackages: the
Address identity, the Tx snapshot, the extension boundary interfaces,
the storage contracts, and context helpers for the caller identity and
nested call depth. Look into the account package for the central state
machine that wires the pieces together.

We pass context.Context between the account and its extensions. The
context carries the apparent caller of the current operation and the
nested call depth; there exist two functions for every value T we
support:

  WithXYZ(Context, T) Context
  GetXYZ(Context) T
*/
package soter
