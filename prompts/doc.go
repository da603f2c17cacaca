// Package prompts turns a source text into image prompts for the three
// narrative sections of a document and caches them on disk.
//
// The pieces, leaves first:
//
//   - Section and SectionPrompts: the fixed start/middle/end key set and its
//     JSON form.
//   - ParseCompletion: pure cleanup of a raw enumerated completion.
//   - Generator: one completion request per section, in order.
//   - Cache: returns cached prompts or generates and persists new ones.
package prompts
