/*
Package modules implements the registry of installed modules.

A module is an extension granted the same mutation rights as the
account itself. Installation is atomic with the module's OnInstall
callback: either the registration and everything the callback did are
committed together, or nothing is. Removal is unconditional; the
OnUninstall callback runs best effort so a broken module can always
be revoked.
*/
package modules
