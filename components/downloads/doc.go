// Package downloads provides the net/http surface of the questionnaire: it
// lists sections for a respondent, serves the one-time full and per-section
// PDF downloads, accepts filled-in uploads and verifies them.
//
// Routes are registered with Go 1.22 method patterns under a mount path
// (default /questionnaire):
//
//	GET  {mount}/{id}/sections
//	GET  {mount}/{id}/full
//	GET  {mount}/{id}/sections/{key}
//	POST {mount}/{id}/responses
//	POST {mount}/responses/verify/{code}
//	POST {mount}/verify-mobile
//
// Each download is handed out once. Invalid or unknown application ids and
// unknown sections answer 404; repeated downloads answer 403.
//
// MobileSession ties the download routes to a verified mobile number: a
// successful verify-mobile sets a signed HttpOnly cookie, and requests for
// another registration's documents answer 403 before any download is
// claimed.
package downloads
