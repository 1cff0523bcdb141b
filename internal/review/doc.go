// Package review implements the reply-normalization and validation pipeline
// that turns free-form LLM output into typed bug reports.
//
// The pipeline is a fixed sequence of total stages: envelope unwrapping,
// markdown fence stripping, JSON decoding, per-candidate schema validation,
// and file-path stamping. Every failure signal short-circuits to an empty
// result; no stage lets an error escape past [Analyze], so one malformed
// reply for one file never aborts review of the others.
//
// [Run] drives the pipeline once per changed file with bounded concurrency
// and assembles the per-file findings into a [Report] for the output
// writers.
package review
