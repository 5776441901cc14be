// Package internalswap implements the in-RAM batch swap engine (C6): given a
// full edge vector resident in memory and an ordered batch of swaps, it
// commits swaps one at a time against the live vector and a companion
// existence index, in swap-submission order, so that a later swap in the
// same batch always observes the edges exactly as any earlier swap left
// them.
//
// This replaces the original engine's two-phase simulate/resolve design,
// whose dependency-chain and existence-forwarding machinery answers "does
// this edge exist" without random access to the edge vector. Since
// internalswap holds the whole vector in RAM, sequential commit against a
// live map-backed existence index gives the same swap-id-ordered outcome;
// tfp commits in the same order, tracking existence as base count plus a
// delta. See DESIGN.md for the detailed rationale.
//
// Grounded in EdgeSwapInternalSwapsBase.cpp's performSwaps for the commit
// policy (loop check, then conflict check against both targets, then write
// back) and §4.6 of the accompanying design document for failure modes.
package internalswap
