// Package gharchive reads GH Archive hourly gzip files as a stream of records
//
// Design choices:
// - One address per archive hour; Expand turns a time window into hours, either
//   every hour (complete coverage) or one hour per day (legacy sampling).
// - Decode with a streaming json.Decoder so values may follow each other with any
//   whitespace and an hour is never held in memory as a whole.
// - Fail fast: transport, gzip and JSON failures come back as typed errors
//   (fetch, decompress, parse) and the reader stays failed after the first one.
// - Records keep only the fields ranking reads; pointer fields tell absent/null
//   apart from empty strings.
package gharchive
