// Package files implements the file storage feature.
//
// It provides upload, download, listing, deletion and presigned-URL
// generation for objects in the configured bucket, on top of the
// core/storage client.
//
// # Components
//
//   - Service: Performs the storage operations and content-type fallback.
//   - Handler: Exposes HTTP endpoints for the file operations.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST   /files/:name     : Upload the request body as an object.
//   - GET    /files/:name     : Download an object.
//   - GET    /files           : List objects (optional ?prefix=).
//   - GET    /files/:name/url : Get a time-limited download URL.
//   - DELETE /files/:name     : Delete an object.
package files
