// Package textutil sanitizes album, artist, and title text for use as file
// and directory names.
package textutil
