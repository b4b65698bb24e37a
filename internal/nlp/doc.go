// Package nlp defines the boundary to the external NLP collaborators:
// spell correction and named-entity extraction.
//
// Both run out of process. The gateway only ships text across and receives
// a corrected string or a list of labeled entities back; model internals are
// the sidecar's business. Entity order is preserved exactly as emitted —
// downstream command building depends on it.
package nlp
