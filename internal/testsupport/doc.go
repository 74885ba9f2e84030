// Package testsupport provides shared helpers for oralscan tests: temp-backed
// configurations and synthetic BGR frames with known color composition.
package testsupport
