// Package domain holds the pure types and transition logic of the arena
// economy: equipment stat derivation, combat power, experience leveling, and
// battle outcome decisions. Nothing here performs I/O or owns shared state;
// the ledger package applies these transitions against its store.
package domain
