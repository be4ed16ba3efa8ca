// Package cli implements the nlogfmt command line: render turns messages,
// stdin lines or a followed file into pattern-formatted records and
// explain prints what a pattern compiles to.
package cli
