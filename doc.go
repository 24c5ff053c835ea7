// Package hashagg contains the core vocabulary of hashagg, a parallel key-based aggregation engine.
// Input keys are split into contiguous ranges, each range is aggregated by one worker into its own
// hash-indexed table, and the per-worker tables are then combined by a selectable merge algorithm.
// This root package defines the types shared by every stage of that pipeline, and is an excellent
// overview of the key concepts: Keys, the Creator/Updater/Merger policy triple and the table contracts.
package hashagg
