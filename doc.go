// Package gpuowl implements the proof subsystem of a distributed
// Mersenne-primality worker: a Fiat-Shamir hash chain, a residue codec,
// the .proof file format, a content-addressed residue cache, and the
// proof-of-exponentiation builder and verifier built on top of them.
//
// The FFT/NTT squaring engine, the work-queue client, and the PRP/LL
// inner-loop checkpointing are out of scope; see engine.BigIntEngine for
// the abstract boundary this package consumes.
package gpuowl
