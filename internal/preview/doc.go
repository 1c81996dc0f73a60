// Package preview serves a portfolio site over HTTP for local review.
//
// The server is a plain static file server on a chi router: generated pages
// are viewed exactly as they will be deployed. Dot files, including the
// scaffolder's staging temp files, are never served.
package preview
