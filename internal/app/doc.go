// Package app provides the application service layer.
//
// Service owns the delivery queue and the sentiment analyzer for the lifetime of the process
// and turns survey submissions into queued records. HTTP handlers talk only to Service.
package app
