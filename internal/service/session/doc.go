// Package session implements the guided-session orchestration engine: the
// state machine that sequences prompts, manages the capture lifecycle,
// tracks per-phase progress, and hands completed responses to the artifact
// store.
//
// A Controller is constructed once with its injected collaborators (prompt
// store, capture device, artifact store, event emitter) and drives any
// number of Sessions. All session state is explicit in the Session value —
// there are no ambient globals — and every session is serialized on a single
// logical thread (the Registry enforces this for the HTTP surface).
package session
