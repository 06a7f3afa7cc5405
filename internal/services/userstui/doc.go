// Package userstui renders the users table in a terminal.
//
// The model drives the same usertable.Snapshot the web console uses, so
// selection and pagination behave identically across surfaces.
package userstui
