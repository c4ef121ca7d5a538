// Package web serves the festival site.
//
// Pages are static shells from the pages catalog. A shell that declares a
// host slot has its unit mounted server-side by the mount dispatcher before
// the page is written, or, when the slot is marked deferred, fetched by the
// browser from the fragment route. Public forms and the admin portal write
// through the storage layer and report back with one-shot flash notices.
package web
