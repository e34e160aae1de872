// Package library scans and reorganizes the on-disk subtitle library.
//
// The canonical layout keeps one reference track per movie folder plus
// candidate translations in language-named subfolders. The organizer plans
// and applies the migrations that get a messy download folder into that
// shape; the checks feed the doctor command.
package library
