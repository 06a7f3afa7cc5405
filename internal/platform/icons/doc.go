// Package icons defines the icon identifiers used by console surfaces.
//
// The catalog maps stable icon identifiers to labels and to Lucide symbols so
// templates reference intent ("edit", "delete") rather than artwork.
package icons
