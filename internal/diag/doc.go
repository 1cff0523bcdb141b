// Package diag provides the optional diagnostics sink the pipeline notifies
// of non-fatal anomalies: unrecognized envelopes, decode failures, rejected
// candidates, gateway errors.
//
// A [Sink] is passed explicitly into pipeline calls; there is no package
// singleton. Absence of a sink (the no-op from [Nop]) changes observability
// only, never functional output.
package diag
