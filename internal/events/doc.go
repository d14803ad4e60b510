// Package events provides a minimal in-memory event system so the session
// engine can announce outcomes (e.g. a saved artifact) without direct
// knowledge of the components that react to them.
package events
