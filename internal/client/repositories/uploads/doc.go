// Package uploads keeps a local ledger of documents sent to object storage.
//
// A record is created as pending before the upload starts and marked
// completed once the object store accepted it, so interrupted uploads can
// be listed and retried.
package uploads
