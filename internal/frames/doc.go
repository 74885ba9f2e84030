// Package frames provides indexed, timestamped access to decoded video frames.
//
// Source wraps an OpenCV VideoCapture. Individual frame reads that fail
// (corrupt data, out-of-range index) report absence instead of erroring so a
// single bad frame never aborts a scan; only a source that cannot be opened
// at all is fatal.
//
// The Provider interface decouples consumers from the concrete decoder so
// tests can feed synthetic frames.
package frames
