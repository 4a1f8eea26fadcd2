// SPDX-License-Identifier: MIT

// Package modelstore persists encoded models under string names.
//
// Store is a small blob interface (Put, Get, Delete, List) with four
// backends: the local filesystem, S3 (aws-sdk-go-v2), MinIO or any other
// S3-compatible service (minio-go), and an embedded Badger database.
// SaveModel and LoadModel bridge a Store and the model codec. S3Store
// uploads payloads of MultipartThreshold bytes or more in parts.
//
// Names are slash-separated relative paths ("plain/k32.esh"). Every backend
// returns ErrNotFound (matchable with errors.Is) for a missing name, and List
// returns names sorted ascending with the backend prefix stripped.
package modelstore
