// Package admin implements the operator console for CRM users.
//
// Each browser gets a view session holding one users table snapshot. Table
// actions post to the server, which applies them to the snapshot and answers
// with the re-rendered table fragment for HTMX to swap in place.
package admin
