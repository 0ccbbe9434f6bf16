// Package delivery implements the outbound retry queue.
//
// Queue buffers survey records, persists the whole ordered queue to a single storage slot
// after every mutation, and replays one record per tick against the spreadsheet endpoint.
// Failed records are demoted to the tail until they exhaust their retries and are dropped.
package delivery
