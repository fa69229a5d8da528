// Package cookies imports browser cookie stores into cookie records.
// It reads Firefox (moz_cookies SQLite), Chrome (cookies SQLite, unencrypted
// values only) and Netscape text cookie files. SQLite stores are copied to
// a temporary directory before they are opened so a running browser keeps
// its lock.
//
// Cookie values are never logged or formatted into errors.
package cookies
