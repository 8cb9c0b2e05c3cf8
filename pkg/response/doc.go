// Package response accepts filled-in questionnaires: it checks the uploader
// against the registration, extracts the answers with pdfcpu, stores the
// document and issues a verification code.
package response
