// Package adminauth guards the admin portal: bcrypt password checks, signed
// session tokens carried in a cookie, and the middleware that requires them.
package adminauth
