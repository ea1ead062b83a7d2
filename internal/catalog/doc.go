// Package catalog holds garden bed definitions: the predefined beds offered to
// users, any extra beds supplied by configuration, and custom beds built from
// user input. Definitions are immutable once constructed.
package catalog
