// Package diag defines the diagnostic model used by the template pipeline.
//
// A Diagnostic carries a Severity, a stable Code (rendered as TPR001 and
// so on), a short Message and a Primary span into a template file. Notes
// add secondary spans when one location is not enough, e.g. the first
// template that claimed a duplicated name.
//
// Producers emit through a Reporter; BagReporter collects into a Bag which
// enforces a limit and supports sorting and deduplication. Rendering lives
// in internal/diagfmt.
//
// Codes:
//
//	TPR001  syntax error in a template
//	TPR002  template could not be loaded
//	TPR003  generated file could not be written
//	TPR004  duplicate template name (warning)
//	TPR005  template produced no output (info)
package diag
