// Package docstrfmt reformats Python docstrings to the PEP 257
// summary/description convention.
//
// The transform is source-to-source: the input is scanned into a
// position-annotated token stream and reassembled verbatim, except that
// a triple-quoted string immediately following an indentation token is
// rewritten as a one-line summary, a blank line, and a re-indented
// description. Every other token, including inter-token whitespace,
// round-trips byte for byte.
//
// Core properties:
//   - Single pass over the source, no state carried across docstrings
//   - Byte-lossless reassembly of everything that is not a docstring
//   - Naive first-sentence splitting, preserved for compatibility
//
// Example:
//
//	formatted, err := docstrfmt.Format(source)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(formatted)
package docstrfmt
