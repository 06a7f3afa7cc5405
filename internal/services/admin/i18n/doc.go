// Package i18n resolves the console language for a request and hands out
// printers backed by the shared message catalog.
package i18n
