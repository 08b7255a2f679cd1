// Package types defines the shared vocabulary of nvramkit: typed errors with
// stable categories and the partition names a reference may address.
//
// Callers branch on error intent with errors.Is against the sentinels below
// rather than matching message text.
//
// This package has no dependencies beyond the standard library.
package types
