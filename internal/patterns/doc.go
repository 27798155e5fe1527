// Package patterns assembles the ordered pattern list handed to the redactor.
//
// Patterns come from three sources, concatenated in this order:
//  1. built-in presets (see [PresetNames])
//  2. pattern files, in the order given
//  3. inline patterns from flags or the config file
//
// A pattern file ending in .yaml, .yml or .json holds a document of the form
//
//	patterns:
//	  - 'AKIA[0-9A-Z]{16}'
//	  - name: session cookie
//	    regex: 'sid=[0-9a-f]{32}'
//
// and is validated against an embedded JSON schema before use. Any other file
// is read as one pattern per line; blank lines and lines whose first
// non-blank character is '#' are skipped.
package patterns
