// Package orchestrator wires the question-set loader, parser and renderer
// registry into a single Generate call that turns a respondent plus a mode
// into a downloadable document and its filename.
package orchestrator
