// Package config loads strokecap configuration.
//
// Configuration is a CUE document unified with the embedded #Config schema
// (schema.cue). The schema is closed: unknown fields are errors. Every field
// has a default, so an empty document is valid and equals Default().
//
//	pointers: capacity: 12
//	straight_edge: {
//		enabled:       true
//		drawin_frames: 24
//	}
package config
