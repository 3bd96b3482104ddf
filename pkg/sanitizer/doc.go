// Package sanitizer cleans raw form input before validation and storage.
//
// Every function is idempotent and never fails: input that cannot be cleaned is
// returned in a form the validator will reject.
package sanitizer
