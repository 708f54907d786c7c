/*
Package x contains the account's registries and pipelines.

Each sub-package is a controller over one slice of account state:
validators, modules, hooks and the signature codec. Controllers are
package-level functions over a KVStore, kept free of object state so
they compose from the account aggregate and from each other.

Mutating controller calls are gated by the account's authorization
predicate, which is passed in rather than imported, so the packages
stay free of a dependency on the aggregate.
*/
package x
